package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const separator = "|"

// EncodeMultiFieldToken creates an opaque token from any number of string fields.
func EncodeMultiFieldToken(fields ...string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strings.Join(fields, separator)))
}

// DecodeMultiFieldToken decodes a token into its component fields.
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), separator), nil
}

// EncodeHistoryToken creates a token pointing at position offset of an account's ledger.
func EncodeHistoryToken(accountID string, offset int) string {
	return EncodeMultiFieldToken(accountID, strconv.Itoa(offset))
}

// DecodeHistoryToken returns the ledger offset stored in token. The token must
// have been issued for accountID.
func DecodeHistoryToken(token, accountID string) (int, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return 0, err
	}
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid pagination token format (split)")
	}
	if parts[0] != accountID {
		return 0, fmt.Errorf("pagination token was issued for a different account")
	}
	offset, err := strconv.Atoi(parts[1])
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid pagination token format (offset parse)")
	}
	return offset, nil
}
