package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyRazorpaySignature(t *testing.T) {
	const secret = "test_key_secret"
	good := sign("order_123", "pay_456", secret)

	if !VerifyRazorpaySignature("order_123", "pay_456", good, secret) {
		t.Error("valid signature rejected")
	}
	if VerifyRazorpaySignature("order_123", "pay_456", good, "other_secret") {
		t.Error("signature accepted with wrong secret")
	}
	if VerifyRazorpaySignature("order_999", "pay_456", good, secret) {
		t.Error("signature accepted for different order")
	}
	if VerifyRazorpaySignature("order_123", "pay_999", good, secret) {
		t.Error("signature accepted for different payment")
	}
	if VerifyRazorpaySignature("order_123", "pay_456", "", secret) {
		t.Error("empty signature accepted")
	}
	if VerifyRazorpaySignature("order_123", "pay_456", "deadbeef", secret) {
		t.Error("garbage signature accepted")
	}

	// Both ids valid on their own but signed for each other's counterpart
	cross := sign("order_456", "pay_123", secret)
	if VerifyRazorpaySignature("order_123", "pay_456", cross, secret) {
		t.Error("signature accepted for swapped order/payment pair")
	}
}
