package handler

import (
	"regexp"
	"testing"

	"github.com/ffaiyaz23/boltgo/request"
	"github.com/ffaiyaz23/boltgo/response"
	"github.com/stretchr/testify/require"
)

func namedHandler(name string) Handler {
	return func(req *request.Request) (*response.Response, error) {
		return response.Text(200, name), nil
	}
}

func TestRegistry_PatternFirstMatchWins(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterPattern(request.SlashCommand, "/help", namedHandler("help")))
	require.NoError(t, reg.RegisterPattern(request.SlashCommand, "/.*", namedHandler("catchall")))

	h, ok := reg.MatchPattern(request.SlashCommand, "/help")
	require.True(t, ok)
	resp, _ := h(&request.Request{})
	require.Equal(t, "help", string(resp.Body))
}

func TestRegistry_PatternFallsThroughToLaterEntry(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterPattern(request.SlashCommand, "/help", namedHandler("help")))
	require.NoError(t, reg.RegisterPattern(request.SlashCommand, "/.*", namedHandler("catchall")))

	h, ok := reg.MatchPattern(request.SlashCommand, "/other")
	require.True(t, ok)
	resp, _ := h(&request.Request{})
	require.Equal(t, "catchall", string(resp.Body))
}

func TestRegistry_NoMatch(t *testing.T) {
	reg := NewRegistry()
	_, ok := reg.MatchPattern(request.SlashCommand, "/anything")
	require.False(t, ok)
}

func TestRegistry_RepeatedPatternReplaces(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterPattern(request.SlashCommand, "/help", namedHandler("v1")))
	require.NoError(t, reg.RegisterPattern(request.SlashCommand, "/help", namedHandler("v2")))

	h, ok := reg.MatchPattern(request.SlashCommand, "/help")
	require.True(t, ok)
	resp, _ := h(&request.Request{})
	require.Equal(t, "v2", string(resp.Body))
}

func TestRegistry_Event(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterEvent("app_mention", "", namedHandler("mention"))
	reg.RegisterEvent("message", "message_changed", namedHandler("changed"))

	h, ok := reg.MatchEvent("app_mention:null")
	require.True(t, ok)
	resp, _ := h(&request.Request{})
	require.Equal(t, "mention", string(resp.Body))

	h, ok = reg.MatchEvent("message:message_changed")
	require.True(t, ok)
	resp, _ = h(&request.Request{})
	require.Equal(t, "changed", string(resp.Body))

	_, ok = reg.MatchEvent("message:null")
	require.False(t, ok)
}

func TestRegistry_EventReplace(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterEvent("app_mention", "", namedHandler("v1"))
	reg.RegisterEvent("app_mention", "", namedHandler("v2"))

	h, _ := reg.MatchEvent("app_mention:null")
	resp, _ := h(&request.Request{})
	require.Equal(t, "v2", string(resp.Body))
}

func TestRegistry_Webhook(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterWebhook("deploy", namedHandler("deploy-handler"))

	h, ok := reg.MatchWebhook("deploy")
	require.True(t, ok)
	resp, _ := h(&request.Request{})
	require.Equal(t, "deploy-handler", string(resp.Body))

	_, ok = reg.MatchWebhook("unregistered")
	require.False(t, ok)
}

func TestRegistry_PrecompiledPatternUsedVerbatim(t *testing.T) {
	reg := NewRegistry()
	re := regexp.MustCompile("^action_(a|b)$")
	require.NoError(t, reg.RegisterPatternRegexp(request.BlockAction, re, namedHandler("ab")))

	_, ok := reg.MatchPattern(request.BlockAction, "action_a")
	require.True(t, ok)
	_, ok = reg.MatchPattern(request.BlockAction, "action_c")
	require.False(t, ok)
}
