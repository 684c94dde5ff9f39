package abi

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/defihorse/horse-deploy/internal/usecase"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var bigIntType = reflect.TypeOf(&big.Int{})

// Parser converts command line strings into values the ABI encoder accepts
type Parser struct{}

// NewParser creates a new argument parser
func NewParser() *Parser {
	return &Parser{}
}

// ParseArgs parses one raw string per ABI input
func (p *Parser) ParseArgs(inputs abi.Arguments, raw []string) ([]any, error) {
	if len(raw) != len(inputs) {
		return nil, fmt.Errorf("expected %d argument(s) %s, got %d", len(inputs), Signature(inputs), len(raw))
	}

	values := make([]any, len(inputs))
	for i, input := range inputs {
		value, err := parseValue(input.Type, strings.TrimSpace(raw[i]))
		if err != nil {
			name := input.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("argument %s (%s): %w", name, input.Type.String(), err)
		}
		values[i] = value
	}
	return values, nil
}

// Signature renders the constructor parameters of a contract
func (p *Parser) Signature(inputs abi.Arguments) string {
	return Signature(inputs)
}

// Signature renders inputs as "(type name, ...)"
func Signature(inputs abi.Arguments) string {
	parts := make([]string, len(inputs))
	for i, input := range inputs {
		parts[i] = strings.TrimSpace(input.Type.String() + " " + input.Name)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func parseValue(t abi.Type, s string) (any, error) {
	switch t.T {
	case abi.AddressTy:
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("invalid address %q", s)
		}
		return common.HexToAddress(s), nil

	case abi.UintTy, abi.IntTy:
		return parseInteger(t, s)

	case abi.BoolTy:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid bool %q", s)
		}
		return b, nil

	case abi.StringTy:
		return s, nil

	case abi.BytesTy:
		b, err := hexutil.Decode(s)
		if err != nil {
			return nil, fmt.Errorf("invalid bytes %q: %w", s, err)
		}
		return b, nil

	case abi.FixedBytesTy:
		b, err := hexutil.Decode(s)
		if err != nil {
			return nil, fmt.Errorf("invalid bytes%d %q: %w", t.Size, s, err)
		}
		if len(b) != t.Size {
			return nil, fmt.Errorf("bytes%d needs %d bytes, got %d", t.Size, t.Size, len(b))
		}
		arr := reflect.New(t.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(b))
		return arr.Interface(), nil

	case abi.SliceTy, abi.ArrayTy:
		return parseList(t, s)

	default:
		return nil, fmt.Errorf("unsupported type %s", t.String())
	}
}

func parseInteger(t abi.Type, s string) (any, error) {
	n, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", s)
	}

	var lower, upper *big.Int
	if t.T == abi.UintTy {
		lower = big.NewInt(0)
		upper = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(t.Size)), big.NewInt(1))
	} else {
		half := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
		lower = new(big.Int).Neg(half)
		upper = new(big.Int).Sub(half, big.NewInt(1))
	}
	if n.Cmp(lower) < 0 || n.Cmp(upper) > 0 {
		return nil, fmt.Errorf("%s out of range for %s", s, t.String())
	}

	// Only 8, 16, 32 and 64 bit integers have a native Go kind
	if t.GetType() == bigIntType {
		return n, nil
	}
	if t.T == abi.UintTy {
		return reflect.ValueOf(n.Uint64()).Convert(t.GetType()).Interface(), nil
	}
	return reflect.ValueOf(n.Int64()).Convert(t.GetType()).Interface(), nil
}

// parseList accepts "[a,b,c]" or "a,b,c"
func parseList(t abi.Type, s string) (any, error) {
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")

	var items []string
	if strings.TrimSpace(s) != "" {
		items = strings.Split(s, ",")
	}
	if t.T == abi.ArrayTy && len(items) != t.Size {
		return nil, fmt.Errorf("%s needs %d elements, got %d", t.String(), t.Size, len(items))
	}

	var list reflect.Value
	if t.T == abi.ArrayTy {
		list = reflect.New(t.GetType()).Elem()
	} else {
		list = reflect.MakeSlice(t.GetType(), len(items), len(items))
	}
	for i, item := range items {
		value, err := parseValue(*t.Elem, strings.TrimSpace(item))
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		list.Index(i).Set(reflect.ValueOf(value))
	}
	return list.Interface(), nil
}

// Ensure the parser implements the interface
var _ usecase.ArgumentParser = (*Parser)(nil)
