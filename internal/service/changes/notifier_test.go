package changes

import (
	"context"
	"errors"
	"testing"

	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/internal/domain/types"
	"github.com/Temutjin2k/agro-insurance/pkg/logger"
	"github.com/stretchr/testify/assert"
)

type recordingSink struct {
	name string
	err  error
	got  []models.Change
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Publish(_ context.Context, change models.Change) error {
	s.got = append(s.got, change)
	return s.err
}

func TestFanoutDeliversToEverySink(t *testing.T) {
	failing := &recordingSink{name: "rabbitmq", err: errors.New("channel closed")}
	ok := &recordingSink{name: "websocket"}

	f := NewFanout(logger.InitLogger("test", logger.LevelError), failing, ok)
	f.Notify(context.Background(), models.NewChange(types.TablePoints, types.OpInsert, 7, nil))

	assert.Len(t, failing.got, 1)
	if assert.Len(t, ok.got, 1) {
		assert.Equal(t, int64(7), ok.got[0].RecordID)
		assert.Equal(t, types.OpInsert, ok.got[0].Op)
	}
}

func TestNop(t *testing.T) {
	var n Notifier = Nop{}
	n.Notify(context.Background(), models.Change{})
}
