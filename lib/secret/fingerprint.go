// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// fingerprintKey is the BLAKE3 keyed-hash key for token fingerprints:
// the ASCII domain name zero-padded to 32 bytes. Changing it changes
// every fingerprint ever logged.
var fingerprintKey = [32]byte{
	'r', 'o', 'c', 'k', 'e', 't', 'd', 'e', 's', 'k', '.', 't', 'o', 'k', 'e', 'n',
	'.', 'f', 'p', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// FingerprintLength is the number of hex characters Fingerprint returns.
const FingerprintLength = 12

// Fingerprint returns a short, stable, non-reversible identifier for a
// token, suitable for log fields. The empty token fingerprints to "".
func Fingerprint(token string) string {
	if token == "" {
		return ""
	}
	hasher, err := blake3.NewKeyed(fingerprintKey[:])
	if err != nil {
		// NewKeyed only fails for keys that are not 32 bytes.
		panic("secret: fingerprint key: " + err.Error())
	}
	hasher.Write([]byte(token))
	digest := hasher.Sum(nil)
	return hex.EncodeToString(digest)[:FingerprintLength]
}
