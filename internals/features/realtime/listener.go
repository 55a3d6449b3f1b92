package realtime

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"
)

// Channel NOTIFY yang diisi trigger notify_table_change (lihat database.Migrate).
const NotifyChannel = "table_changes"

// Listener meneruskan NOTIFY dari Postgres ke Hub, supaya tulis dari luar
// aplikasi (SQL manual, service lain) ikut memicu refresh.
type Listener struct {
	DSN     string
	Channel string
	Hub     *Hub
}

type notifyPayload struct {
	Table string `json:"table"`
	Op    string `json:"op"`
}

func ParsePayload(s string) (Event, error) {
	var p notifyPayload
	if err := sonic.UnmarshalString(s, &p); err != nil {
		return Event{}, fmt.Errorf("payload notify tidak valid: %w", err)
	}
	if strings.TrimSpace(p.Table) == "" {
		return Event{}, fmt.Errorf("payload notify tanpa table")
	}
	op := strings.ToUpper(strings.TrimSpace(p.Op))
	switch op {
	case "INSERT", "UPDATE", "DELETE":
	default:
		op = Wildcard
	}
	return Event{Table: p.Table, Type: op}, nil
}

// Run blocking sampai ctx selesai; koneksi putus dicoba ulang dengan backoff.
func (l *Listener) Run(ctx context.Context) {
	channel := l.Channel
	if channel == "" {
		channel = NotifyChannel
	}
	backoff := time.Second
	for {
		err := l.listenOnce(ctx, channel)
		if ctx.Err() != nil {
			log.Println("[REALTIME] listener berhenti")
			return
		}
		log.Printf("[REALTIME] listener error: %v (retry %s)", err, backoff)
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (l *Listener) listenOnce(ctx context.Context, channel string) error {
	conn, err := pgx.Connect(ctx, l.DSN)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{channel}.Sanitize()); err != nil {
		return err
	}
	log.Printf("[REALTIME] LISTEN %s aktif", channel)

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		ev, err := ParsePayload(n.Payload)
		if err != nil {
			log.Printf("[REALTIME] %v", err)
			continue
		}
		l.Hub.Publish(ev)
	}
}
