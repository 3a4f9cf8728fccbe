package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringArrayValue(t *testing.T) {
	v, err := StringArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = StringArray{"a", "b"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, v)
}

func TestStringArrayScan(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want StringArray
	}{
		{"nil", nil, StringArray{}},
		{"empty string", "", StringArray{}},
		{"json null", "null", StringArray{}},
		{"json array", `["m_and_a","valuation"]`, StringArray{"m_and_a", "valuation"}},
		{"bytes", []byte(`["x"]`), StringArray{"x"}},
		{"legacy quoted string", `"earnings"`, StringArray{"earnings"}},
		{"legacy bare string", "earnings", StringArray{"earnings"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var a StringArray
			require.NoError(t, a.Scan(tc.in))
			assert.Equal(t, tc.want, a)
		})
	}

	var a StringArray
	assert.Error(t, a.Scan(42))
}

func TestStringArrayDedupe(t *testing.T) {
	in := StringArray{" m_and_a", "", "valuation", "m_and_a ", "  "}
	assert.Equal(t, StringArray{"m_and_a", "valuation"}, in.Dedupe())
}

func TestStringArrayContains(t *testing.T) {
	a := StringArray{"m_and_a", "valuation"}
	assert.True(t, a.Contains("valuation"))
	assert.False(t, a.Contains("synergies"))
}
