package dataprocessing

import (
	"strings"

	"tzzbcli/pkg/contracts/domain"
)

// Classifier maps the vendor's free-text business-type tokens onto the trade
// taxonomy. The mapping is total: anything outside the configured vocabulary
// classifies as ActionIgnore and the record is dropped downstream.
type Classifier struct {
	rules map[string]domain.TradeAction
}

// NewClassifier returns a classifier loaded with the stock vendor vocabulary.
func NewClassifier() *Classifier {
	c := &Classifier{rules: make(map[string]domain.TradeAction)}

	// Flexible-schema business names
	c.AddRule("证券卖出", domain.ActionSell)
	c.AddRule("证券买入", domain.ActionBuy)
	c.AddRule("开放基金认购结果", domain.ActionBuy)
	c.AddRule("银证转存", domain.ActionTransferIn)
	c.AddRule("银行转存", domain.ActionTransferIn)
	c.AddRule("利息归本", domain.ActionTransferIn)
	c.AddRule("银证转取", domain.ActionTransferOut)
	c.AddRule("银行转取", domain.ActionTransferOut)

	// Fixed-schema buy/sell flag values
	c.AddRule("买入", domain.ActionBuy)
	c.AddRule("卖出", domain.ActionSell)

	return c
}

// AddRule registers one token as a synonym for the given action. Existing
// rules for the same token are replaced, so deployments can override the
// stock vocabulary.
func (c *Classifier) AddRule(token string, action domain.TradeAction) {
	c.rules[strings.TrimSpace(token)] = action
}

// Classify maps one business-type token to a trade action.
func (c *Classifier) Classify(token string) domain.TradeAction {
	if action, ok := c.rules[strings.TrimSpace(token)]; ok {
		return action
	}
	return domain.ActionIgnore
}
