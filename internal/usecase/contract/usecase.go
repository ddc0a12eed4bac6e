package contract

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"

	"go.uber.org/zap"

	"safeguard-backend/internal/domain/errs"
	applog "safeguard-backend/internal/logger"
)

var reFunctionName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type Intent struct {
	Contract string
	Function string
	Args     []any
}

// Ack acknowledges a contract intent. Transactions are signed client-side.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Args    []any  `json:"args"`
	Address string `json:"address,omitempty"`
}

type Usecase struct {
	// contract name → deployed address (may be empty when not deployed)
	contracts map[string]string
}

func NewUsecase(contracts map[string]string) *Usecase {
	return &Usecase{contracts: contracts}
}

// Names lists the contracts the service knows about.
func (u *Usecase) Names() []string {
	out := make([]string, 0, len(u.contracts))
	for n := range u.contracts {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (u *Usecase) Read(ctx context.Context, in Intent) (*Ack, error) {
	addr, err := u.check(in)
	if err != nil {
		return nil, err
	}
	applog.CtxDebug(ctx, "contract read intent", zap.String("contract", in.Contract), zap.String("function", in.Function))
	return &Ack{Success: true, Message: fmt.Sprintf("Read %s from %s", in.Function, in.Contract), Args: orEmpty(in.Args), Address: addr}, nil
}

func (u *Usecase) Write(ctx context.Context, in Intent) (*Ack, error) {
	addr, err := u.check(in)
	if err != nil {
		return nil, err
	}
	applog.CtxInfo(ctx, "contract write intent", zap.String("contract", in.Contract), zap.String("function", in.Function))
	return &Ack{Success: true, Message: fmt.Sprintf("Executed %s on %s", in.Function, in.Contract), Args: orEmpty(in.Args), Address: addr}, nil
}

// ParseArgs decodes the JSON array passed in the args query parameter.
func ParseArgs(raw string) ([]any, error) {
	if raw == "" {
		return []any{}, nil
	}
	var args []any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, errs.Invalid("args must be a JSON array: %v", err)
	}
	return orEmpty(args), nil
}

func (u *Usecase) check(in Intent) (string, error) {
	if in.Contract == "" || in.Function == "" {
		return "", errs.Invalid("Missing required parameters")
	}
	addr, ok := u.contracts[in.Contract]
	if !ok {
		return "", errs.Invalid("unknown contract %q", in.Contract)
	}
	if !reFunctionName.MatchString(in.Function) {
		return "", errs.Invalid("invalid function name %q", in.Function)
	}
	return addr, nil
}

func orEmpty(args []any) []any {
	if args == nil {
		return []any{}
	}
	return args
}
