package rabbitmq_test

import (
	"encoding/json"
	"testing"
	"time"

	"studentreg/internal/models"
	"studentreg/pkg/rabbitmq"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublishing(t *testing.T) {
	at := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	event := models.StudentEvent{
		Type:       models.StudentCreated,
		StudentID:  "id-1",
		DisplayID:  "STU202412345",
		Email:      "ada@example.com",
		OccurredAt: at,
	}

	msg, err := rabbitmq.NewPublishing(event)
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, "student.created", msg.Type)
	assert.Equal(t, uint8(amqp.Persistent), msg.DeliveryMode)
	assert.Equal(t, at, msg.Timestamp)

	var decoded models.StudentEvent
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, event, decoded)
}

func TestPublishWithoutChannel(t *testing.T) {
	c := &rabbitmq.Client{}
	err := c.PublishStudentEvent(models.StudentEvent{Type: models.StudentDeleted})
	assert.Error(t, err)
}
