// Package across talks to the Across protocol: price quotes and deposit
// status over its HTTP API, and deposits over the origin chain's SpokePool.
package across

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/billyjitsu/across-network-automation/types"
)

const DefaultBaseURL = "https://app.across.to/api"

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

type feeComponent struct {
	Pct   string `json:"pct"`
	Total string `json:"total"`
}

type suggestedFeesResponse struct {
	TotalRelayFee        feeComponent `json:"totalRelayFee"`
	LpFee                feeComponent `json:"lpFee"`
	Timestamp            string       `json:"timestamp"`
	EstimatedFillTimeSec int          `json:"estimatedFillTimeSec"`
	IsAmountTooLow       bool         `json:"isAmountTooLow"`
}

// DepositStatus is the remote status endpoint's response. Only the status
// field is contractually required; fill details ride along when present.
type DepositStatus struct {
	Status        string      `json:"status"`
	FillTx        string      `json:"fillTx"`
	FillTimestamp json.Number `json:"fillTimestamp"`
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("GET %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	dec := json.NewDecoder(strings.NewReader(string(body)))
	dec.UseNumber()
	return dec.Decode(out)
}

// SuggestedFees fetches a quote for moving amount (smallest unit) along the
// route. The output amount is the input less the total relay fee.
func (c *Client) SuggestedFees(ctx context.Context, route *types.Route, amount *big.Int) (*types.Quote, error) {
	params := url.Values{}
	params.Set("inputToken", route.InputToken)
	params.Set("outputToken", route.OutputToken)
	params.Set("originChainId", strconv.Itoa(route.OriginChainID))
	params.Set("destinationChainId", strconv.Itoa(route.DestinationChain))
	params.Set("amount", amount.String())

	var resp suggestedFeesResponse
	if err := c.getJSON(ctx, "/suggested-fees", params, &resp); err != nil {
		return nil, err
	}
	if resp.IsAmountTooLow {
		return nil, fmt.Errorf("amount %s is below the relayer minimum for this route", amount.String())
	}

	relayFee, ok := new(big.Int).SetString(resp.TotalRelayFee.Total, 10)
	if !ok {
		return nil, fmt.Errorf("unparseable relay fee %q", resp.TotalRelayFee.Total)
	}
	lpFee, ok := new(big.Int).SetString(resp.LpFee.Total, 10)
	if !ok {
		return nil, fmt.Errorf("unparseable lp fee %q", resp.LpFee.Total)
	}
	ts, err := strconv.ParseUint(resp.Timestamp, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("unparseable quote timestamp %q", resp.Timestamp)
	}

	return &types.Quote{
		InputAmount:          new(big.Int).Set(amount),
		OutputAmount:         new(big.Int).Sub(amount, relayFee),
		EstimatedFillTimeSec: resp.EstimatedFillTimeSec,
		RelayFeeTotal:        relayFee,
		LpFeeTotal:           lpFee,
		Timestamp:            uint32(ts),
	}, nil
}

// DepositStatus queries the remote status endpoint for one deposit.
func (c *Client) DepositStatus(ctx context.Context, originChainID int, depositID int64) (*DepositStatus, error) {
	params := url.Values{}
	params.Set("originChainId", strconv.Itoa(originChainID))
	params.Set("depositId", strconv.FormatInt(depositID, 10))

	var resp DepositStatus
	if err := c.getJSON(ctx, "/deposit/status", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
