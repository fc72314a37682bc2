package clob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goccy/go-json"
	"github.com/polymarket/go-order-utils/pkg/model"
	"go.uber.org/zap"

	"github.com/jvaldes/pairbot/pkg/types"
)

// zeroAddress is the public taker: anyone may fill the order.
const zeroAddress = "0x0000000000000000000000000000000000000000"

// SubmitBuyFOK submits an immediate-or-cancel buy order for the given token:
// the order fills completely at submission or is rejected outright, with no
// partial fills and no resting orders. Price is the limit per share, size is
// the number of shares.
func (c *Client) SubmitBuyFOK(ctx context.Context, tokenID string, price, size float64) (*types.OrderSubmissionResponse, error) {
	if c.privateKey == nil {
		return nil, fmt.Errorf("order submission requires a private key")
	}

	maker := c.address
	if c.funder != "" {
		maker = c.funder
	}

	signatureType := model.EOA
	if c.funder != "" {
		signatureType = model.POLY_PROXY
	}

	orderData := &model.OrderData{
		Maker:         maker,
		Taker:         zeroAddress,
		TokenId:       tokenID,
		MakerAmount:   rawAmount(size * price), // USDC paid
		TakerAmount:   rawAmount(size),         // shares received
		Side:          model.BUY,
		FeeRateBps:    "0",
		Nonce:         "0",
		Signer:        c.address,
		Expiration:    "0",
		SignatureType: signatureType,
	}

	signedOrder, err := c.orderBuilder.BuildSignedOrder(c.privateKey, orderData, model.CTFExchange)
	if err != nil {
		return nil, fmt.Errorf("build signed order: %w", err)
	}

	request := types.OrderSubmissionRequest{
		Order:     toOrderJSON(signedOrder),
		Owner:     c.apiKey,
		OrderType: "FOK",
	}

	reqBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("marshal order request: %w", err)
	}

	body, err := c.signedRequest(ctx, http.MethodPost, "/order", reqBody)
	if err != nil {
		OrderSubmissionsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("submit order: %w", err)
	}

	var resp types.OrderSubmissionResponse
	err = json.Unmarshal(body, &resp)
	if err != nil {
		OrderSubmissionsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("parse order response: %w", err)
	}

	if resp.Failed() {
		OrderSubmissionsTotal.WithLabelValues("rejected").Inc()
	} else {
		OrderSubmissionsTotal.WithLabelValues("filled").Inc()
	}

	c.logger.Debug("order-submitted",
		zap.String("token-id", tokenID),
		zap.Float64("price", price),
		zap.Float64("size", size),
		zap.Bool("success", resp.Success),
		zap.String("status", resp.Status),
		zap.String("order-id", resp.OrderID))

	return &resp, nil
}

// Cancel requests cancellation of an order. It is best-effort: a false
// return means the exchange reported the order as not canceled (commonly
// because it already settled), and the caller decides whether that matters.
func (c *Client) Cancel(ctx context.Context, orderID string) (bool, error) {
	reqBody, err := json.Marshal(map[string]string{"orderID": orderID})
	if err != nil {
		return false, fmt.Errorf("marshal cancel request: %w", err)
	}

	body, err := c.signedRequest(ctx, http.MethodDelete, "/order", reqBody)
	if err != nil {
		CancellationsTotal.WithLabelValues("error").Inc()
		return false, fmt.Errorf("cancel order: %w", err)
	}

	var resp types.CancelResponse
	err = json.Unmarshal(body, &resp)
	if err != nil {
		CancellationsTotal.WithLabelValues("error").Inc()
		return false, fmt.Errorf("parse cancel response: %w", err)
	}

	for _, id := range resp.Canceled {
		if id == orderID {
			CancellationsTotal.WithLabelValues("canceled").Inc()
			return true, nil
		}
	}

	CancellationsTotal.WithLabelValues("not_canceled").Inc()

	c.logger.Warn("order-not-canceled",
		zap.String("order-id", orderID),
		zap.Any("reasons", resp.NotCanceled))

	return false, nil
}

// signedRequest performs an authenticated request with L2 HMAC headers.
func (c *Client) signedRequest(ctx context.Context, method, path string, reqBody []byte) ([]byte, error) {
	timestamp := fmt.Sprintf("%d", time.Now().Unix())

	signature, err := c.hmacSignature(timestamp, method, path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("sign request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.host+path, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("POLY_API_KEY", c.apiKey)
	req.Header.Set("POLY_SIGNATURE", signature)
	req.Header.Set("POLY_TIMESTAMP", timestamp)
	req.Header.Set("POLY_PASSPHRASE", c.passphrase)
	req.Header.Set("POLY_ADDRESS", c.address)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// toOrderJSON converts a signed order to the wire format the API expects.
// Salt and signature type are integers; every amount is a decimal string.
func toOrderJSON(order *model.SignedOrder) types.SignedOrderJSON {
	side := "BUY"
	if order.Side.Uint64() == uint64(model.SELL) {
		side = "SELL"
	}

	return types.SignedOrderJSON{
		Salt:          order.Salt.Int64(),
		Maker:         order.Maker.Hex(),
		Signer:        order.Signer.Hex(),
		Taker:         order.Taker.Hex(),
		TokenID:       order.TokenId.String(),
		MakerAmount:   order.MakerAmount.String(),
		TakerAmount:   order.TakerAmount.String(),
		Side:          side,
		Expiration:    order.Expiration.String(),
		Nonce:         order.Nonce.String(),
		FeeRateBps:    order.FeeRateBps.String(),
		SignatureType: int(order.SignatureType.Int64()),
		Signature:     "0x" + common.Bytes2Hex(order.Signature),
	}
}

// rawAmount converts a decimal amount to the 6-decimal fixed-point string
// used by USDC and CTF tokens.
func rawAmount(amount float64) string {
	return fmt.Sprintf("%d", int64(amount*1000000))
}
