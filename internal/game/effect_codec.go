package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownEffect is returned when effect JSON names an unregistered type.
var ErrUnknownEffect = errors.New("unknown effect type")

var effectFactories = map[EffectKind]func() Effect{
	KindDamage:        func() Effect { return &Damage{} },
	KindGainBlock:     func() Effect { return &GainBlock{} },
	KindHeal:          func() Effect { return &Heal{} },
	KindGainResource:  func() Effect { return &GainResource{} },
	KindConsumeStatus: func() Effect { return &ConsumeStatus{} },
	KindConsumeCharge: func() Effect { return &ConsumeCharge{} },
	KindApplyStatus:   func() Effect { return &ApplyStatus{} },
	KindRemoveStatus:  func() Effect { return &RemoveStatus{} },
	KindScaleStatus:   func() Effect { return &ScaleStatus{} },
	KindSpreadStatus:  func() Effect { return &SpreadStatus{} },
	KindDraw:          func() Effect { return &Draw{} },
	KindDiscard:       func() Effect { return &Discard{} },
	KindReturnToDeck:  func() Effect { return &ReturnToDeck{} },
	KindCreateCards:   func() Effect { return &CreateCards{} },
	KindDeploy:        func() Effect { return &Deploy{} },
	KindDecompose:     func() Effect { return &Decompose{} },
	KindBonus:         func() Effect { return &Bonus{} },
	KindConditional:   func() Effect { return &Conditional{} },
	KindChoice:        func() Effect { return &Choice{} },
	KindReaction:      func() Effect { return &Reaction{} },
	KindResonance:     func() Effect { return &Resonance{} },
	KindTrace:         func() Effect { return &Trace{} },
	KindDiscover:      func() Effect { return &Discover{} },
}

// EffectKinds lists every registered effect kind in sorted order.
func EffectKinds() []EffectKind {
	out := make([]EffectKind, 0, len(effectFactories))
	for k := range effectFactories {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NewEffect returns a zero value of the node registered for kind.
func NewEffect(kind EffectKind) (Effect, bool) {
	f, ok := effectFactories[kind]
	if !ok {
		return nil, false
	}
	return f(), true
}

func (es Effects) MarshalJSON() ([]byte, error) {
	if es == nil {
		return []byte("null"), nil
	}
	out := make([]json.RawMessage, 0, len(es))
	for i, e := range es {
		body, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("effects[%d]: %w", i, err)
		}
		head := `{"type":"` + string(e.Kind()) + `"`
		if len(body) <= 2 {
			out = append(out, json.RawMessage(head+"}"))
			continue
		}
		out = append(out, json.RawMessage(head+","+string(body[1:])))
	}
	return json.Marshal(out)
}

func (es *Effects) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*es = nil
		return nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return fmt.Errorf("effects: %w", err)
	}
	out := make(Effects, 0, len(raws))
	for i, raw := range raws {
		var head struct {
			Type EffectKind `json:"type"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return fmt.Errorf("effects[%d]: %w", i, err)
		}
		e, ok := NewEffect(head.Type)
		if !ok {
			return fmt.Errorf("effects[%d]: %w %q", i, ErrUnknownEffect, head.Type)
		}
		if err := json.Unmarshal(raw, e); err != nil {
			return fmt.Errorf("effects[%d] %s: %w", i, head.Type, err)
		}
		out = append(out, e)
	}
	*es = out
	return nil
}

// Walk visits every node in the tree depth first, including nested lists.
func (es Effects) Walk(fn func(Effect)) {
	for _, e := range es {
		fn(e)
		for _, child := range Children(e) {
			child.Walk(fn)
		}
	}
}

// Children returns the nested effect lists held by a composite node.
func Children(e Effect) []Effects {
	switch n := e.(type) {
	case *Bonus:
		return []Effects{n.Effects}
	case *Conditional:
		return []Effects{n.Then, n.Else}
	case *Choice:
		out := make([]Effects, 0, len(n.Options))
		for _, o := range n.Options {
			out = append(out, o.Effects)
		}
		return out
	case *Reaction:
		return []Effects{n.Effects}
	case *Resonance:
		return []Effects{n.Effects}
	}
	return nil
}
