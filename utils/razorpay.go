package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/razorpay/razorpay-go"
)

const (
	gatewayAttempts = 3
	gatewayBackoff  = 500 * time.Millisecond
)

func razorpayClient() *razorpay.Client {
	return razorpay.NewClient(
		os.Getenv("RAZORPAY_KEY_ID"),
		os.Getenv("RAZORPAY_KEY_SECRET"),
	)
}

// CreateRazorpayOrder creates a gateway order for the amount (in rupees) and
// returns the order id. Transient gateway failures are retried with backoff;
// after exhaustion the error surfaces to the caller.
func CreateRazorpayOrder(receipt string, amount float64) (string, error) {
	client := razorpayClient()

	data := map[string]interface{}{
		"amount":   int64(amount * 100), // amount in paise
		"currency": "INR",
		"receipt":  receipt,
	}

	var body map[string]interface{}
	var err error
	for attempt := 1; attempt <= gatewayAttempts; attempt++ {
		body, err = client.Order.Create(data, nil)
		if err == nil {
			break
		}
		log.Printf("razorpay order create attempt %d failed: %v", attempt, err)
		if attempt < gatewayAttempts {
			time.Sleep(time.Duration(attempt) * gatewayBackoff)
		}
	}
	if err != nil {
		return "", fmt.Errorf("razorpay order create failed: %v", err)
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("razorpay order response missing id")
	}
	return orderID, nil
}

// FetchRazorpayPayment fetches the authoritative payment details (method,
// status) from the gateway. Client-supplied values are never trusted for
// these fields.
func FetchRazorpayPayment(paymentID string) (map[string]interface{}, error) {
	client := razorpayClient()

	var body map[string]interface{}
	var err error
	for attempt := 1; attempt <= gatewayAttempts; attempt++ {
		body, err = client.Payment.Fetch(paymentID, nil, nil)
		if err == nil {
			return body, nil
		}
		log.Printf("razorpay payment fetch attempt %d failed: %v", attempt, err)
		if attempt < gatewayAttempts {
			time.Sleep(time.Duration(attempt) * gatewayBackoff)
		}
	}
	return nil, fmt.Errorf("razorpay payment fetch failed: %v", err)
}

// VerifyRazorpaySignature recomputes the HMAC-SHA256 of "orderID|paymentID"
// with the key secret and compares it to the supplied signature in constant
// time. A mismatch is a hard rejection.
func VerifyRazorpaySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
