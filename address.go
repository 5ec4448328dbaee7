package heirloom

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/heirloom/errors"
)

const (
	// AddressLength is the size of every address.
	AddressLength = 20

	// Bech32Prefix is the human readable part of bech32 addresses.
	Bech32Prefix = "heir"
)

// Address is the truncated sha256 of a Condition.
type Address []byte

// NewAddress returns nil for nil data.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	sum := sha256.Sum256(data)
	return sum[:AddressLength]
}

// ParseAddress reads an address in one of the forms
//
//   <hex>  hex:<hex>  heir1...  bech32:<bech32>  cond:<ext>/<type>/<hex>
//
// An empty string is the empty address.
func ParseAddress(enc string) (Address, error) {
	format, value := "hex", enc
	if i := strings.IndexByte(enc, ':'); i >= 0 {
		format, value = enc[:i], enc[i+1:]
	} else if strings.HasPrefix(enc, Bech32Prefix+"1") {
		format = "bech32"
	}
	if value == "" {
		return nil, nil
	}

	var addr Address
	switch format {
	case "hex":
		raw, err := hex.DecodeString(value)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, err.Error())
		}
		addr = raw
	case "bech32":
		raw, err := decodeBech32(value)
		if err != nil {
			return nil, err
		}
		addr = raw
	case "cond":
		c, err := parseCondition(value)
		if err != nil {
			return nil, err
		}
		return c.Address(), nil
	default:
		return nil, errors.ErrType.Newf("unknown format %q", format)
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

func (a Address) Equals(other Address) bool {
	return bytes.Equal(a, other)
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.ErrInput.Newf("address: %X", []byte(a))
	}
	return nil
}

// String is upper case hex, or "(nil)" for the empty address.
func (a Address) String() string {
	if a.IsEmpty() {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Bech32String encodes the address with the heir prefix.
func (a Address) Bech32String() (string, error) {
	data, err := bech32.ConvertBits(a, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, err.Error())
	}
	s, err := bech32.Encode(Bech32Prefix, data)
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return s, nil
}

// MarshalJSON writes upper case hex instead of the base64 default of
// byte slices.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(hex.EncodeToString(a)))
}

// UnmarshalJSON accepts every form of ParseAddress.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	addr, err := ParseAddress(enc)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

func decodeBech32(s string) ([]byte, error) {
	_, data, err := bech32.Decode(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return payload, nil
}
