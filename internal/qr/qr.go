// Package qr generates the opaque identifier strings encoded into QR codes.
// Actual QR image rendering happens on the client; the server only needs a
// unique, recognizable string per user or garment.
package qr

import (
	"fmt"

	"github.com/google/uuid"
)

// ForUser returns a fresh QR identifier for a user.
func ForUser(userID int64) string {
	return fmt.Sprintf("user-%d-%s", userID, uuid.NewString())
}

// ForApparel returns a fresh QR identifier for a garment.
func ForApparel(apparelID, userID int64) string {
	return fmt.Sprintf("apparel-%d-%d-%s", apparelID, userID, uuid.NewString())
}
