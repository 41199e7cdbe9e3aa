package repository

import (
	"context"
	"fmt"

	"github.com/gocql/gocql"

	"github.com/caffeinepub/cybermeet/internal/config"
	"github.com/caffeinepub/cybermeet/internal/domain"
)

// CassandraMessageRepository implements MessageRepository on Cassandra for
// deployments where the message log outgrows the relational store. The
// table clusters by (ts, message_id), and the service layer hands out
// strictly increasing per-room timestamps, so clustering order equals
// append order.
//
// Expected schema:
//
//	CREATE TABLE messages_by_room (
//	    room_id    bigint,
//	    ts         bigint,
//	    message_id text,
//	    sender     text,
//	    content    text,
//	    PRIMARY KEY ((room_id), ts, message_id)
//	);
type CassandraMessageRepository struct {
	session *gocql.Session
}

// NewCassandraMessageRepository connects to the cluster and returns a repo.
func NewCassandraMessageRepository(cfg config.CassandraConfig) (*CassandraMessageRepository, error) {
	cluster := gocql.NewCluster(cfg.Hosts...)
	cluster.Keyspace = cfg.Keyspace
	cluster.ConnectTimeout = cfg.ConnectTimeout
	cluster.Timeout = cfg.Timeout

	switch cfg.Consistency {
	case "LOCAL_ONE":
		cluster.Consistency = gocql.LocalOne
	case "LOCAL_QUORUM":
		cluster.Consistency = gocql.LocalQuorum
	case "ONE":
		cluster.Consistency = gocql.One
	case "QUORUM":
		cluster.Consistency = gocql.Quorum
	default:
		cluster.Consistency = gocql.LocalQuorum
	}

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create cassandra session: %w", err)
	}

	return &CassandraMessageRepository{session: session}, nil
}

// Append persists a message.
func (r *CassandraMessageRepository) Append(ctx context.Context, msg *domain.Message) error {
	query := `INSERT INTO messages_by_room (room_id, ts, message_id, sender, content)
			  VALUES (?, ?, ?, ?, ?)`
	if err := r.session.Query(query,
		msg.RoomID, msg.Timestamp, msg.MessageID, msg.Sender, msg.Content,
	).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// ListByRoom returns the room's full log, oldest first.
func (r *CassandraMessageRepository) ListByRoom(ctx context.Context, roomID int64) ([]domain.Message, error) {
	query := `SELECT ts, message_id, sender, content
			  FROM messages_by_room
			  WHERE room_id = ?`

	iter := r.session.Query(query, roomID).WithContext(ctx).Iter()

	var messages []domain.Message
	var msg domain.Message
	for iter.Scan(&msg.Timestamp, &msg.MessageID, &msg.Sender, &msg.Content) {
		msg.RoomID = roomID
		messages = append(messages, msg)
		msg = domain.Message{}
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	return messages, nil
}

// Close tears down the cluster session.
func (r *CassandraMessageRepository) Close() error {
	r.session.Close()
	return nil
}
