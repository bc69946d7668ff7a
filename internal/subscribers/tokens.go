package subscribers

import (
	"crypto/rand"
	"crypto/sha256"
	"strings"

	"github.com/mr-tron/base58"
)

const (
	// TokenPrefix is the prefix for all subscriber tokens
	TokenPrefix = "dm_"
)

// GenerateToken creates a new random subscriber token.
// Format: dm_ + Base58(SHA256(random_bytes))
func GenerateToken() (string, error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", err
	}
	hash := sha256.Sum256(randomBytes)
	return TokenPrefix + base58.Encode(hash[:]), nil
}

// ValidTokenFormat rejects values that cannot have been issued by GenerateToken,
// so lookups for obviously bogus tokens never reach the database.
func ValidTokenFormat(token string) bool {
	if !strings.HasPrefix(token, TokenPrefix) {
		return false
	}
	decoded, err := base58.Decode(strings.TrimPrefix(token, TokenPrefix))
	return err == nil && len(decoded) == sha256.Size
}

//   This project is the monolithic backend API for the OpenSourceDUTH team. Access to open data compiled and provided by the OpenSourceDUTH University Team.
//   API Copyright (C) 2025 OpenSourceDUTH
//       This program is free software: you can redistribute it and/or modify
//       it under the terms of the GNU General Public License as published by
//       the Free Software Foundation, either version 3 of the License, or
//       (at your option) any later version.

//       This program is distributed in the hope that it will be useful,
//       but WITHOUT ANY WARRANTY; without even the implied warranty of
//       MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//       GNU General Public License for more details.

//       You should have received a copy of the GNU General Public License
//       along with this program.  If not, see <https://www.gnu.org/licenses/>.
