package models

import (
	"fmt"
	"strings"
)

// enum describes a string enumeration with display labels, keeping
// declaration order for listings.
type enum[T ~string] struct {
	kind   string
	order  []T
	labels map[T]string
}

func newEnum[T ~string](kind string, pairs ...enumPair[T]) enum[T] {
	e := enum[T]{kind: kind, labels: make(map[T]string, len(pairs))}
	for _, p := range pairs {
		e.order = append(e.order, p.key)
		e.labels[p.key] = p.label
	}
	return e
}

type enumPair[T ~string] struct {
	key   T
	label string
}

func (e enum[T]) all() []T {
	out := make([]T, len(e.order))
	copy(out, e.order)
	return out
}

func (e enum[T]) label(v T) string {
	if l, ok := e.labels[v]; ok {
		return l
	}
	return string(v)
}

func (e enum[T]) valid(v T) bool {
	_, ok := e.labels[v]
	return ok
}

// parse accepts either the key or the label, case-insensitively.
func (e enum[T]) parse(s string) (T, error) {
	s = strings.TrimSpace(s)
	for _, v := range e.order {
		if strings.EqualFold(s, string(v)) || strings.EqualFold(s, e.labels[v]) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown %s: %q", e.kind, s)
}

// keys joins the keys for help text.
func (e enum[T]) keys() string {
	parts := make([]string, len(e.order))
	for i, v := range e.order {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
