package utils_test

import (
	"testing"

	"github.com/belgahub/hub/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func TestTextNormalizerNormalize(t *testing.T) {
	t.Parallel()

	n := utils.NewTextNormalizer()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases",
			input:    "Gestão Financeira",
			expected: "gestao financeira",
		},
		{
			name:     "strips accents",
			input:    "automação",
			expected: "automacao",
		},
		{
			name:     "compresses whitespace",
			input:    "  CRM   de  vendas ",
			expected: "crm de vendas",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestTextNormalizerContains(t *testing.T) {
	t.Parallel()

	n := utils.NewTextNormalizer()

	assert.True(t, n.Contains("Automação de Marketing", "automacao"))
	assert.True(t, n.Contains("Gestão Financeira", "GESTAO"))
	assert.False(t, n.Contains("CRM de vendas", "financeiro"))
	assert.False(t, n.Contains("", "crm"))
	assert.False(t, n.Contains("crm", ""))
}
