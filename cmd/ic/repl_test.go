package main

import (
	"bytes"
	"testing"

	"github.com/icrt/ic/internal/runtime"
	"github.com/stretchr/testify/require"
)

func TestShellConsCarCdr(t *testing.T) {
	rt := runtime.New(runtime.DefaultGCThreshold)
	s := &shell{rt: rt, atomNames: []string{"nil"}}

	require.NoError(t, s.eval(new(bytes.Buffer), "int 1"))
	require.NoError(t, s.eval(new(bytes.Buffer), "int 2"))
	require.NoError(t, s.eval(new(bytes.Buffer), "cons"))
	require.Len(t, s.stack, 1)

	require.NoError(t, s.eval(new(bytes.Buffer), "dup"))
	require.NoError(t, s.eval(new(bytes.Buffer), "car"))
	var buf bytes.Buffer
	require.NoError(t, s.eval(&buf, "show"))
	require.Equal(t, "1\n", buf.String())

	require.NoError(t, s.eval(new(bytes.Buffer), "drop"))
	buf.Reset()
	require.NoError(t, s.eval(&buf, "cdr"))
	require.NoError(t, s.eval(&buf, "show"))
	require.Equal(t, "2\n", buf.String())
}

func TestShellUnknownCommand(t *testing.T) {
	s := &shell{rt: runtime.New(runtime.DefaultGCThreshold)}
	err := s.eval(new(bytes.Buffer), "bogus")
	require.Error(t, err)
}

func TestShellPopOnEmptyStack(t *testing.T) {
	s := &shell{rt: runtime.New(runtime.DefaultGCThreshold)}
	_, err := s.pop()
	require.Error(t, err)
}

func TestLookupProgram(t *testing.T) {
	p, ok := lookupProgram("listops")
	require.True(t, ok)
	require.Equal(t, "listops", p.name)

	_, ok = lookupProgram("nonexistent")
	require.False(t, ok)
}
