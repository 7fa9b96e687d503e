package migrator

import (
	"context"
	"fmt"
	"maps"
)

// memHistory is an in-memory History implementation for tests.
type memHistory struct {
	applied map[Version]struct{}
}

var _ History = (*memHistory)(nil)

func newMemHistory(versions ...Version) *memHistory {
	h := &memHistory{applied: map[Version]struct{}{}}
	for _, v := range versions {
		h.applied[v] = struct{}{}
	}
	return h
}

func (h *memHistory) List(_ context.Context) (map[Version]struct{}, error) {
	return maps.Clone(h.applied), nil
}

func (h *memHistory) Count(_ context.Context) (int, error) {
	return len(h.applied), nil
}

func (h *memHistory) Contains(_ context.Context, version Version) (bool, error) {
	_, ok := h.applied[version]
	return ok, nil
}

func (h *memHistory) MarkApplied(_ context.Context, version Version) error {
	if _, ok := h.applied[version]; ok {
		return fmt.Errorf("version %s is already applied", version)
	}
	h.applied[version] = struct{}{}
	return nil
}

func (h *memHistory) MarkReverted(_ context.Context, version Version) error {
	if _, ok := h.applied[version]; !ok {
		return fmt.Errorf("version %s isn't applied", version)
	}
	delete(h.applied, version)
	return nil
}

func newTestRegistry(versions ...Version) *Registry {
	reg := NewRegistry()
	for _, v := range versions {
		err := reg.Register(&Migration{
			Version: v,
			Name:    fmt.Sprintf("m%s", v),
			Up:      fmt.Sprintf("CREATE TABLE t%s (id INTEGER)", v),
			Down:    fmt.Sprintf("DROP TABLE t%s", v),
		})
		if err != nil {
			panic(err)
		}
	}
	return reg
}
