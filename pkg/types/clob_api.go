package types

// PriceResponse represents the response from GET /price.
// The CLOB API returns the price as a string.
type PriceResponse struct {
	Price string `json:"price"`
}

// SignedOrderJSON represents a signed order in the format expected by the
// CLOB API. Fields match the EIP-712 order structure after signing.
type SignedOrderJSON struct {
	Salt          int64  `json:"salt"` // Integer per API spec (not string)
	Maker         string `json:"maker"`
	Signer        string `json:"signer"`
	Taker         string `json:"taker"`
	TokenID       string `json:"tokenId"`
	MakerAmount   string `json:"makerAmount"`
	TakerAmount   string `json:"takerAmount"`
	Side          string `json:"side"`
	Expiration    string `json:"expiration"`
	Nonce         string `json:"nonce"`
	FeeRateBps    string `json:"feeRateBps"`
	SignatureType int    `json:"signatureType"` // 0=EOA, 1=POLY_PROXY, 2=GNOSIS_SAFE
	Signature     string `json:"signature"`
}

// OrderSubmissionRequest wraps a signed order with submission metadata.
// Owner is the API key, not the maker address.
type OrderSubmissionRequest struct {
	Order     SignedOrderJSON `json:"order"`
	Owner     string          `json:"owner"`
	OrderType string          `json:"orderType"` // GTC, FOK, GTD, or FAK
}

// OrderSubmissionResponse represents the response from POST /order.
type OrderSubmissionResponse struct {
	Success  bool   `json:"success"`
	ErrorMsg string `json:"errorMsg"`
	OrderID  string `json:"orderId"`
	Status   string `json:"status"` // matched, live, delayed, unmatched
}

// Failed reports whether the submission must be treated as a failed leg:
// an explicit non-success flag or an error message counts as failure.
func (r *OrderSubmissionResponse) Failed() bool {
	return !r.Success || r.ErrorMsg != ""
}

// CancelResponse represents the response from DELETE /order.
type CancelResponse struct {
	Canceled    []string          `json:"canceled"`
	NotCanceled map[string]string `json:"not_canceled"`
}
