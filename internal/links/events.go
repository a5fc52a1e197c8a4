package links

import (
	"github.com/fatih/structs"
	"paylink.io/paylink-social/internal/databus"
	"paylink.io/paylink-social/pkg/common"
)

const linkEventsTopic = "paylink_link_events"

const (
	auditOpCreated   = "created"
	auditOpCompleted = "completed"
)

// linkAuditEvent is the fire-and-forget audit trail of link state changes
// pushed to the data bus. Consumers downstream get the full record snapshot.
type linkAuditEvent struct {
	kind   Kind
	op     string
	record map[string]interface{}
}

func (e *linkAuditEvent) Topic() string {
	return linkEventsTopic
}

func (e *linkAuditEvent) Serialize() []byte {
	return []byte(common.MustGetJSONString(map[string]interface{}{
		"kind":   e.kind,
		"op":     e.op,
		"record": e.record,
	}))
}

func publishAudit(kind Kind, op string, record interface{}) {
	databus.TryPublish(&linkAuditEvent{
		kind:   kind,
		op:     op,
		record: structs.Map(record),
	})
}
