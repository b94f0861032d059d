package sessionstorage

import (
	"github.com/grafana/sobek"
	"github.com/sirupsen/logrus"
	"go.k6.io/k6/js/common"
	"go.k6.io/k6/js/modules"

	"github.com/oshokin/xk6-session-storage/sessionstorage/store"
)

// Storage is the JavaScript-facing wrapper around a session store.
//
// Every method runs synchronously on the VU event loop thread: it validates
// and converts its JS arguments, performs the store operation, and converts
// the result back. Validation always completes before the store is touched,
// so a call that throws has not modified anything.
type Storage struct {
	// store is the backing implementation, synchronized when shared.
	store store.Store

	// vu is the owning k6 VU that provides the Sobek runtime.
	vu modules.VU

	// shared is true for named storages reachable from several VUs.
	shared bool

	logger logrus.FieldLogger
}

// NewStorage constructs a new Storage bound to the given VU and backing Store.
func NewStorage(vu modules.VU, s store.Store, options Options, logger logrus.FieldLogger) *Storage {
	return &Storage{
		store:  s,
		vu:     vu,
		shared: options.Shared(),
		logger: logger.WithField("storage", options.Name),
	}
}

// Object builds the JS object handed to scripts: the storage methods plus a
// read-only, enumerable length accessor.
func (s *Storage) Object() *sobek.Object {
	rt := s.vu.Runtime()
	obj := rt.NewObject()

	methods := []struct {
		name string
		fn   func(sobek.FunctionCall) sobek.Value
	}{
		{name: "key", fn: s.Key},
		{name: "getItem", fn: s.GetItem},
		{name: "multiGet", fn: s.MultiGet},
		{name: "getAllItems", fn: s.GetAllItems},
		{name: "setItem", fn: s.SetItem},
		{name: "multiSet", fn: s.MultiSet},
		{name: "mergeItem", fn: s.MergeItem},
		{name: "multiMerge", fn: s.MultiMerge},
		{name: "removeItem", fn: s.RemoveItem},
		{name: "multiRemove", fn: s.MultiRemove},
		{name: "clear", fn: s.Clear},
		{name: "getAllKeys", fn: s.GetAllKeys},
	}

	for _, method := range methods {
		if err := obj.Set(method.name, method.fn); err != nil {
			common.Throw(rt, err)
		}
	}

	length := rt.ToValue(func() int {
		return s.store.Length()
	})

	if err := obj.DefineAccessorProperty("length", length, nil, sobek.FLAG_FALSE, sobek.FLAG_TRUE); err != nil {
		common.Throw(rt, err)
	}

	return obj
}

// importer returns a value importer suited to this storage. Private storages
// keep runtime-bound objects (functions, dates...) as-is.
func (s *Storage) importer() *valueImporter {
	return newValueImporter(s.vu.Runtime(), !s.shared)
}

// throw raises err in the VU runtime.
func (s *Storage) throw(err error) {
	throwError(s.vu.Runtime(), err)
}
