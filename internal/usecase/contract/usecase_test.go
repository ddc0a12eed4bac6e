package contract

import (
	"context"
	"errors"
	"testing"

	"safeguard-backend/internal/domain/errs"
)

func newUC() *Usecase {
	return NewUsecase(map[string]string{
		"InsuranceCore":   "0x1111111111111111111111111111111111111111",
		"ClaimProcessor":  "",
		"TokenRWAFactory": "",
		"MockBSDToken":    "",
	})
}

func TestUsecase_ReadWrite(t *testing.T) {
	uc := newUC()
	ctx := context.Background()

	ack, err := uc.Read(ctx, Intent{Contract: "InsuranceCore", Function: "getPolicy", Args: []any{float64(1)}})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if ack.Message != "Read getPolicy from InsuranceCore" || ack.Address == "" || len(ack.Args) != 1 {
		t.Fatalf("unexpected ack: %+v", ack)
	}

	ack, err = uc.Write(ctx, Intent{Contract: "ClaimProcessor", Function: "submitClaim"})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if ack.Message != "Executed submitClaim on ClaimProcessor" || ack.Args == nil {
		t.Fatalf("unexpected ack: %+v", ack)
	}
}

func TestUsecase_Rejects(t *testing.T) {
	uc := newUC()
	for _, in := range []Intent{
		{Function: "x"},
		{Contract: "InsuranceCore"},
		{Contract: "Unknown", Function: "x"},
		{Contract: "InsuranceCore", Function: "drop table"},
	} {
		if _, err := uc.Read(context.Background(), in); !errors.Is(err, errs.ErrInvalidInput) {
			t.Fatalf("%+v: want ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestParseArgs(t *testing.T) {
	args, err := ParseArgs(`[1,"0xabc",true]`)
	if err != nil || len(args) != 3 {
		t.Fatalf("ParseArgs = %v, %v", args, err)
	}
	if args, err := ParseArgs(""); err != nil || args == nil || len(args) != 0 {
		t.Fatalf("empty args = %v, %v", args, err)
	}
	if _, err := ParseArgs(`{"a":1}`); !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("object: want ErrInvalidInput, got %v", err)
	}
	if _, err := ParseArgs(`[1,`); !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("malformed: want ErrInvalidInput, got %v", err)
	}
}

func TestUsecase_Names(t *testing.T) {
	names := newUC().Names()
	if len(names) != 4 || names[0] != "ClaimProcessor" {
		t.Fatalf("Names = %v", names)
	}
}
