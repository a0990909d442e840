package driverinfo

import (
	"testing"

	"github.com/copycatdb/furball/api"
)

func TestStringInfoReportsDriverIdentity(t *testing.T) {
	v, ok := StringInfo(api.InfoDriverName, ConnInfo{})
	if !ok || v != DriverName {
		t.Fatalf("got %q, ok=%v", v, ok)
	}
}

func TestStringInfoDerivesFromConnection(t *testing.T) {
	v, ok := StringInfo(api.InfoDatabaseName, ConnInfo{DatabaseName: "widgets"})
	if !ok || v != "widgets" {
		t.Fatalf("got %q, ok=%v", v, ok)
	}
}

func TestStringInfoUnknownTypeFails(t *testing.T) {
	if _, ok := StringInfo(api.InfoType(9999), ConnInfo{}); ok {
		t.Fatal("expected unknown InfoType to report ok=false")
	}
}

func TestSmallIntInfoTxnCapable(t *testing.T) {
	v, ok := SmallIntInfo(api.InfoTxnCapable)
	if !ok || v != api.TxnCapableAll {
		t.Fatalf("got %v, ok=%v", v, ok)
	}
}

func TestIsSupportedKnownAndUnknown(t *testing.T) {
	if !IsSupported(6) {
		t.Fatal("SQLExecDirect (6) should be supported")
	}
	if IsSupported(999) {
		t.Fatal("unknown function code should be unsupported")
	}
}
