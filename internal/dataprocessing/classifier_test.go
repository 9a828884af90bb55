package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tzzbcli/pkg/contracts/domain"
)

func TestClassifyVendorVocabulary(t *testing.T) {
	classifier := NewClassifier()

	tests := []struct {
		token string
		want  domain.TradeAction
	}{
		{"证券卖出", domain.ActionSell},
		{"证券买入", domain.ActionBuy},
		{"开放基金认购结果", domain.ActionBuy},
		{"银证转存", domain.ActionTransferIn},
		{"银行转存", domain.ActionTransferIn},
		{"利息归本", domain.ActionTransferIn},
		{"银证转取", domain.ActionTransferOut},
		{"银行转取", domain.ActionTransferOut},
		{"买入", domain.ActionBuy},
		{"卖出", domain.ActionSell},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(tt.token))
		})
	}
}

func TestClassifyIsTotal(t *testing.T) {
	classifier := NewClassifier()

	// Every token maps to a result; the default is ignore.
	for _, token := range []string{"", "红利入账", "新股申购", "whatever", "  "} {
		assert.Equal(t, domain.ActionIgnore, classifier.Classify(token), "token %q", token)
	}
}

func TestClassifyTrimsWhitespace(t *testing.T) {
	classifier := NewClassifier()
	assert.Equal(t, domain.ActionSell, classifier.Classify("  证券卖出 "))
}

func TestAddRuleOverrides(t *testing.T) {
	classifier := NewClassifier()
	classifier.AddRule("红利入账", domain.ActionTransferIn)
	assert.Equal(t, domain.ActionTransferIn, classifier.Classify("红利入账"))

	// Deployments can also override the stock vocabulary.
	classifier.AddRule("利息归本", domain.ActionIgnore)
	assert.Equal(t, domain.ActionIgnore, classifier.Classify("利息归本"))
}
