package handlers

type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type APIRouteResponse struct {
	Token            string `json:"token"`
	OriginChainID    int    `json:"originChainId"`
	DestinationChain int    `json:"destinationChainId"`
	InputToken       string `json:"inputToken"`
	OutputToken      string `json:"outputToken"`
}
