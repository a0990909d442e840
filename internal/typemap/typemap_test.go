package typemap

import (
	"testing"

	"github.com/copycatdb/furball/api"
)

func TestSQLTypeForCoversEveryKind(t *testing.T) {
	kinds := []TDSKind{KindBool, KindU8, KindI16, KindI32, KindI64, KindF32, KindF64,
		KindStr, KindWStr, KindBytes, KindDate, KindTime, KindDateTime,
		KindDateTimeOffset, KindDecimal, KindGUID}
	for _, k := range kinds {
		if got := SQLTypeFor(k); got == api.UNKNOWN_TYPE {
			t.Errorf("kind %d mapped to UNKNOWN_TYPE", k)
		}
	}
}

func TestDefaultCTypeRoundsThroughExpectedFamilies(t *testing.T) {
	cases := []struct {
		sql  api.SQLType
		c    api.CType
	}{
		{api.BIGINT, api.C_SBIGINT},
		{api.INTEGER, api.C_LONG},
		{api.DOUBLE, api.C_DOUBLE},
		{api.VARCHAR, api.C_CHAR},
		{api.WVARCHAR, api.C_WCHAR},
		{api.VARBINARY, api.C_BINARY},
		{api.GUID, api.C_GUID},
		{api.TYPE_TIMESTAMP, api.C_TYPE_TIMESTAMP},
	}
	for _, c := range cases {
		if got := DefaultCType(c.sql); got != c.c {
			t.Errorf("DefaultCType(%v) = %v, want %v", c.sql, got, c.c)
		}
	}
}

func TestIsCharacterAndIsWide(t *testing.T) {
	if !IsCharacter(api.VARCHAR) || IsWide(api.VARCHAR) {
		t.Error("VARCHAR should be character, narrow")
	}
	if !IsCharacter(api.WVARCHAR) || !IsWide(api.WVARCHAR) {
		t.Error("WVARCHAR should be character, wide")
	}
	if IsCharacter(api.INTEGER) {
		t.Error("INTEGER is not a character type")
	}
}
