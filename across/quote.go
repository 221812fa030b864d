package across

import (
	"context"
	"log"

	"github.com/billyjitsu/across-network-automation/amount"
	"github.com/billyjitsu/across-network-automation/registry"
	"github.com/billyjitsu/across-network-automation/types"
)

// QuoteService converts an operation into a route and smallest-unit amount
// and fetches a quote for it.
type QuoteService struct {
	client    *Client
	logQuotes bool
}

func NewQuoteService(client *Client, logQuotes bool) *QuoteService {
	return &QuoteService{client: client, logQuotes: logQuotes}
}

func (s *QuoteService) Quote(ctx context.Context, op types.Operation) (*types.Quote, *types.Route, error) {
	decimals := registry.Decimals(op.Token, op.Decimals)

	input, err := amount.Parse(op.Amount, decimals)
	if err != nil {
		return nil, nil, err
	}

	route, err := registry.BuildRoute(op.Token, op.FromChain, op.ToChain, op.IsNative, op.UseBridged)
	if err != nil {
		return nil, nil, err
	}

	quote, err := s.client.SuggestedFees(ctx, route, input)
	if err != nil {
		return nil, nil, err
	}

	if s.logQuotes {
		log.Printf("Quote for %s: input %s, output %s, est. fill %ds",
			op.Name,
			amount.Format(quote.InputAmount, decimals),
			amount.Format(quote.OutputAmount, decimals),
			quote.EstimatedFillTimeSec)
		log.Printf("Fees: relay %s, lp %s, total %.4f%% of input",
			amount.Format(quote.RelayFeeTotal, decimals),
			amount.Format(quote.LpFeeTotal, decimals),
			amount.Ratio(quote.TotalFee(), quote.InputAmount)*100)
	}

	return quote, route, nil
}
