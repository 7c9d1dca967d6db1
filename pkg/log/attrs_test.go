package log_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kode4food/testgen/pkg/api"
	"github.com/kode4food/testgen/pkg/log"
)

type errStub string

func TestSessionID(t *testing.T) {
	attr := log.SessionID(api.SessionID("sess-123"))
	assertAttrEqual(t, attr, "session_id", "sess-123")
}

func TestInstanceID(t *testing.T) {
	attr := log.InstanceID("inst-abc")
	assertAttrEqual(t, attr, "instance_id", "inst-abc")
}

func TestTicket(t *testing.T) {
	attr := log.Ticket(api.TicketKey("QA-1"))
	assertAttrEqual(t, attr, "ticket", "QA-1")
}

func TestStatus(t *testing.T) {
	attr := log.Status(api.CatalogReady)
	assertAttrEqual(t, attr, "status", "ready")
}

func TestKey(t *testing.T) {
	attr := log.Key("steps.txt")
	assertAttrEqual(t, attr, "key", "steps.txt")
}

func TestError(t *testing.T) {
	attr := log.Error(nil)
	assertAttrEqual(t, attr, "error", "")

	attr = log.Error(errStub("boom"))
	assertAttrEqual(t, attr, "error", "boom")
}

func TestErrorString(t *testing.T) {
	attr := log.ErrorString("badness")
	assertAttrEqual(t, attr, "error", "badness")
}

func (e errStub) Error() string { return string(e) }

func assertAttrEqual(t *testing.T, attr slog.Attr, key, value string) {
	t.Helper()
	assert.Equal(t, key, attr.Key)
	assert.Equal(t, value, attr.Value.String())
}
