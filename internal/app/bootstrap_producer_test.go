package app

import (
	"context"
	"testing"

	"github.com/nsqio/go-nsq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer_UnreachableDisablesEvents(t *testing.T) {
	producer := newProducer(context.Background(), "127.0.0.1:1")
	assert.Nil(t, producer)

	deps := &Dependencies{NSQProducer: producer}
	assert.Nil(t, deps.Publisher())
}

func TestDependencies_PublisherWithProducer(t *testing.T) {
	// NewProducer only validates config; no connection is made until publish
	p, err := nsq.NewProducer("127.0.0.1:1", nsq.NewConfig())
	require.NoError(t, err)

	deps := &Dependencies{NSQProducer: p}
	pub := deps.Publisher()
	require.NotNil(t, pub)
	assert.Same(t, p, pub)

	// nothing listens on the address, so publishing reports an error
	assert.Error(t, pub.Publish("contacts.extracted", []byte(`{}`)))

	assert.NoError(t, deps.Close())
}
