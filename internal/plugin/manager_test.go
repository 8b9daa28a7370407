package plugin_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/bethropolis/pixie/internal/plugin"
	"github.com/bethropolis/pixie/internal/plugin/plugintest"
)

type recorder struct {
	name    string
	initErr error
	log     *[]string
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) Initialize(api plugin.EditorAPI) error {
	*r.log = append(*r.log, "init:"+r.name)
	return r.initErr
}

func (r *recorder) Shutdown() error {
	*r.log = append(*r.log, "shutdown:"+r.name)
	return nil
}

func TestRegisterRejectsDuplicatesAndEmpty(t *testing.T) {
	var log []string
	m := plugin.NewManager()
	if err := m.Register(&recorder{name: "a", log: &log}); err != nil {
		t.Fatal(err)
	}
	if err := m.Register(&recorder{name: "a", log: &log}); err == nil {
		t.Error("duplicate accepted")
	}
	if err := m.Register(&recorder{log: &log}); err == nil {
		t.Error("empty name accepted")
	}
	if _, ok := m.GetPlugin("a"); !ok {
		t.Error("GetPlugin missed a registered plugin")
	}
}

func TestLifecycleSkipsFailedPlugins(t *testing.T) {
	var log []string
	m := plugin.NewManager()
	for _, p := range []*recorder{
		{name: "b", log: &log},
		{name: "a", log: &log},
		{name: "c", log: &log, initErr: errors.New("boom")},
	} {
		if err := m.Register(p); err != nil {
			t.Fatal(err)
		}
	}

	m.InitializePlugins(plugintest.New(4, t.TempDir()))
	m.ShutdownPlugins()
	m.ShutdownPlugins() // second call is a no-op

	got := strings.Join(log, ",")
	want := "init:a,init:b,init:c,shutdown:a,shutdown:b"
	if got != want {
		t.Errorf("lifecycle = %s, want %s", got, want)
	}
}
