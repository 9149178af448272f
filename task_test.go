package rio

import (
	"testing"
	"time"

	"github.com/CharlyCst/rio/internal/registry"
)

func TestValidateAccess_RejectsDuplicateHandle(t *testing.T) {
	access := []Access{{Handle: 1, Mode: Read}, {Handle: 1, Mode: Write}}
	_, err := validateAccess(access)
	if err == nil {
		t.Fatal("expected error for duplicate handle, got nil")
	}
	if h, ok := ExtractHandleID(err); !ok || h != 1 {
		t.Fatalf("ExtractHandleID = (%v, %v); want (1, true)", h, ok)
	}
}

func TestValidateAccess_RejectsInvalidMode(t *testing.T) {
	access := []Access{{Handle: 1, Mode: AccessMode(99)}}
	_, err := validateAccess(access)
	if err == nil {
		t.Fatal("expected error for invalid access mode, got nil")
	}
}

func TestValidateAccess_BuildsResolverAccess(t *testing.T) {
	access := []Access{{Handle: 5, Mode: Read}, {Handle: 7, Mode: Write}}
	resolverAcc, err := validateAccess(access)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tk := newTask(3, func() {}, access, resolverAcc, time.Now())
	if len(tk.resolverAcc) != 2 {
		t.Fatalf("resolverAcc has %d entries; want 2", len(tk.resolverAcc))
	}
	if tk.resolverAcc[0].Handle != registry.HandleID(5) || tk.resolverAcc[0].Mode != registry.ModeRead {
		t.Fatalf("resolverAcc[0] = %+v; want handle 5, mode Read", tk.resolverAcc[0])
	}
	if tk.resolverAcc[1].Handle != registry.HandleID(7) || tk.resolverAcc[1].Mode != registry.ModeWrite {
		t.Fatalf("resolverAcc[1] = %+v; want handle 7, mode Write", tk.resolverAcc[1])
	}
	if tk.ID() != 3 {
		t.Fatalf("ID() = %d; want 3", tk.ID())
	}
}

func TestNewTask_CopiesAccessSlice(t *testing.T) {
	access := []Access{{Handle: 1, Mode: Read}}
	resolverAcc, err := validateAccess(access)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tk := newTask(1, func() {}, access, resolverAcc, time.Now())
	access[0].Handle = 99
	if tk.access[0].Handle != 1 {
		t.Fatal("newTask did not defensively copy the access slice")
	}
}

func TestAccessMode_String(t *testing.T) {
	if Read.String() != "Read" {
		t.Fatalf("Read.String() = %q; want Read", Read.String())
	}
	if Write.String() != "Write" {
		t.Fatalf("Write.String() = %q; want Write", Write.String())
	}
	if AccessMode(42).String() != "Invalid" {
		t.Fatalf("AccessMode(42).String() = %q; want Invalid", AccessMode(42).String())
	}
}
