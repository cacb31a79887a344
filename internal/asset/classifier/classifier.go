// Package classifier decides which transaction outputs carry asset semantics.
package classifier

import (
	"strings"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
)

// Rule names, in evaluation order.
const (
	RuleTypedMarker       = "typed-marker"
	RuleExplicitPayload   = "explicit-payload"
	RulePubkeyDestination = "pubkey-destination"
)

// Output is the normalized view of a vout that rules are evaluated against.
type Output struct {
	Index       uint32
	ScriptType  string
	Destination string
	Payload     *model.AssetPayload
}

// Rule is one predicate of the ordered classification list.
type Rule struct {
	Name  string
	Match func(Output) bool
}

// RawPayload is an unresolved asset payload extracted from one output.
type RawPayload struct {
	VoutIndex   uint32
	Rule        string
	Name        string
	AssetID     string
	Amount      *float64
	Kind        model.TransferType
	Destination string
	ScriptType  string
}

// Classifier extracts raw asset payloads from transactions. It is safe for concurrent use.
type Classifier struct {
	rules           []Rule
	markers         map[string]model.TransferType
	payloadTypes    map[string]model.TransferType
	pubkeyTypes     map[string]struct{}
	burnAddresses   map[string]struct{}
	burnScriptTypes map[string]struct{}
}

// New builds a Classifier from cfg.
func New(cfg Config) *Classifier {
	c := &Classifier{
		markers:         make(map[string]model.TransferType, len(cfg.Markers)),
		payloadTypes:    make(map[string]model.TransferType, len(cfg.PayloadTypes)),
		pubkeyTypes:     toSet(cfg.PubkeyTypes),
		burnAddresses:   make(map[string]struct{}, len(cfg.BurnAddresses)),
		burnScriptTypes: toSet(cfg.BurnScriptTypes),
	}
	for tag, kind := range cfg.Markers {
		c.markers[strings.ToLower(tag)] = kind
	}
	for typ, kind := range cfg.PayloadTypes {
		c.payloadTypes[strings.ToLower(typ)] = kind
	}
	// Addresses are case sensitive.
	for _, addr := range cfg.BurnAddresses {
		c.burnAddresses[addr] = struct{}{}
	}

	c.rules = []Rule{
		{Name: RuleTypedMarker, Match: c.matchTypedMarker},
		{Name: RuleExplicitPayload, Match: matchExplicitPayload},
		{Name: RulePubkeyDestination, Match: c.matchPubkeyDestination},
	}
	return c
}

// Rules returns the rule names in evaluation order.
func (c *Classifier) Rules() []string {
	names := make([]string, 0, len(c.rules))
	for _, r := range c.rules {
		names = append(names, r.Name)
	}
	return names
}

// Classify returns one RawPayload per asset-bearing output, in vout order.
func (c *Classifier) Classify(tx model.Transaction) []RawPayload {
	var payloads []RawPayload
	for _, vout := range tx.Vout {
		out := normalize(vout)
		if out.Payload.Empty() {
			continue
		}
		for _, rule := range c.rules {
			if !rule.Match(out) {
				continue
			}
			payloads = append(payloads, RawPayload{
				VoutIndex:   out.Index,
				Rule:        rule.Name,
				Name:        strings.TrimSpace(out.Payload.Name),
				AssetID:     strings.TrimSpace(out.Payload.AssetID),
				Amount:      out.Payload.Amount,
				Kind:        c.kind(out),
				Destination: out.Destination,
				ScriptType:  out.ScriptType,
			})
			break
		}
	}
	return payloads
}

func normalize(v model.Vout) Output {
	payload := v.ScriptPubKey.Asset
	if payload.Empty() {
		payload = v.Asset
	}
	return Output{
		Index:       v.N,
		ScriptType:  strings.ToLower(v.ScriptPubKey.Type),
		Destination: v.ScriptPubKey.Destination(),
		Payload:     payload,
	}
}

func (c *Classifier) matchTypedMarker(o Output) bool {
	_, ok := c.markers[o.ScriptType]
	return ok
}

func matchExplicitPayload(o Output) bool {
	return o.Payload.Name != "" || o.Payload.AssetID != ""
}

func (c *Classifier) matchPubkeyDestination(o Output) bool {
	_, ok := c.pubkeyTypes[o.ScriptType]
	return ok && o.Destination != ""
}

func (c *Classifier) kind(o Output) model.TransferType {
	if kind, ok := c.payloadTypes[strings.ToLower(o.Payload.Type)]; ok {
		return kind
	}
	if kind, ok := c.markers[o.ScriptType]; ok && kind != model.TransferTransfer {
		return kind
	}
	if _, ok := c.burnScriptTypes[o.ScriptType]; ok {
		return model.TransferBurn
	}
	if o.Destination == "" {
		return model.TransferBurn
	}
	if _, ok := c.burnAddresses[o.Destination]; ok {
		return model.TransferBurn
	}
	return model.TransferTransfer
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}
