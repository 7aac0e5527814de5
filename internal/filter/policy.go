package filter

import (
	"bytes"
	"fmt"
)

// Policy decides which probe results are reported. It combines status
// code and body substring axes; on each axis, include and exclude sets
// are mutually exclusive and a non-empty include set wins.
type Policy struct {
	includeStatus map[int]struct{}
	excludeStatus map[int]struct{}
	includeBody   [][]byte
	excludeBody   [][]byte
}

// NewPolicy builds a filter policy. Configuring both include and exclude
// on the same axis is rejected, matching startup validation.
func NewPolicy(includeStatus, excludeStatus []int, includeBody, excludeBody []string) (*Policy, error) {
	if len(includeStatus) > 0 && len(excludeStatus) > 0 {
		return nil, fmt.Errorf("include and exclude status codes are mutually exclusive")
	}
	if len(includeBody) > 0 && len(excludeBody) > 0 {
		return nil, fmt.Errorf("include and exclude body strings are mutually exclusive")
	}

	p := &Policy{
		includeStatus: make(map[int]struct{}, len(includeStatus)),
		excludeStatus: make(map[int]struct{}, len(excludeStatus)),
	}
	for _, code := range includeStatus {
		p.includeStatus[code] = struct{}{}
	}
	for _, code := range excludeStatus {
		p.excludeStatus[code] = struct{}{}
	}
	for _, s := range includeBody {
		p.includeBody = append(p.includeBody, []byte(s))
	}
	for _, s := range excludeBody {
		p.excludeBody = append(p.excludeBody, []byte(s))
	}
	return p, nil
}

// NeedsBody reports whether the policy inspects response bodies, so the
// HTTP layer only buffers them when a body filter is configured.
func (p *Policy) NeedsBody() bool {
	return len(p.includeBody) > 0 || len(p.excludeBody) > 0
}

// Accept reports whether a result with the given status code and body
// excerpt passes the policy. It is a pure predicate: re-evaluating the
// same inputs always yields the same answer.
func (p *Policy) Accept(status int, body []byte) bool {
	if len(p.includeStatus) > 0 {
		if _, ok := p.includeStatus[status]; !ok {
			return false
		}
	} else if _, ok := p.excludeStatus[status]; ok {
		return false
	}

	if len(p.includeBody) > 0 {
		found := false
		for _, s := range p.includeBody {
			if bytes.Contains(body, s) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	} else {
		for _, s := range p.excludeBody {
			if bytes.Contains(body, s) {
				return false
			}
		}
	}
	return true
}
