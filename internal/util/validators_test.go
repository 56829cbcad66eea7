package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateColor(t *testing.T) {
	valid := []string{
		"",
		"#000",
		"#fff",
		"#AbC",
		"#000000",
		"#00Fa9B",
		"red",
		"Red",
		"rebeccapurple",
		"lightgoldenrodyellow",
	}
	for _, v := range valid {
		assert.NoError(t, ValidateColor(v), v)
	}

	invalid := []string{
		"#",
		"#ff",
		"#ffff",
		"#fffffff",
		"#ggg",
		"notacolor",
		"dark red",
		" red",
		"ff0000", // hex without the leading #
	}
	for _, v := range invalid {
		assert.Error(t, ValidateColor(v), v)
	}
}
