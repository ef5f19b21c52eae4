package midnight

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// graphql-transport-ws message types
const (
	wsProtocol          = "graphql-transport-ws"
	msgConnectionInit   = "connection_init"
	msgConnectionAck    = "connection_ack"
	msgPing             = "ping"
	msgPong             = "pong"
	msgSubscribe        = "subscribe"
	msgNext             = "next"
	msgError            = "error"
	msgComplete         = "complete"
	contractActionsOpID = "contract-actions"
)

const contractActionsSubscription = `subscription ContractActions($address: HexEncoded!) {
  contractActions(address: $address) {
    __typename
    address
    transaction {
      hash
      block {
        height
      }
    }
  }
}`

type wsMessage struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ContractAction is a contract action reported by the indexer
type ContractAction struct {
	Typename    string `json:"__typename"`
	Address     string `json:"address"`
	Transaction struct {
		Hash  string `json:"hash"`
		Block struct {
			Height uint64 `json:"height"`
		} `json:"block"`
	} `json:"transaction"`
}

// IndexerSubscriber opens GraphQL subscriptions on the indexer websocket
type IndexerSubscriber struct {
	url    string
	dialer *websocket.Dialer
}

// NewIndexerSubscriber creates a subscriber for the given ws:// URL
func NewIndexerSubscriber(url string, handshakeTimeout time.Duration) *IndexerSubscriber {
	return &IndexerSubscriber{
		url: url,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: handshakeTimeout,
			Subprotocols:     []string{wsProtocol},
		},
	}
}

// Subscription is a single open GraphQL subscription.
// The connection is closed when the context passed to Subscribe is done or Close is called.
type Subscription struct {
	conn      *websocket.Conn
	ctx       context.Context
	stop      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Ping dials the websocket and completes the connection handshake
func (s *IndexerSubscriber) Ping(ctx context.Context) error {
	sub, err := s.open(ctx)
	if err != nil {
		return err
	}
	return sub.Close()
}

// SubscribeContractActions subscribes to actions on a contract address
func (s *IndexerSubscriber) SubscribeContractActions(ctx context.Context, address string) (*Subscription, error) {
	sub, err := s.open(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(graphQLRequest{
		Query:     contractActionsSubscription,
		Variables: map[string]any{"address": address},
	})
	if err != nil {
		sub.Close()
		return nil, fmt.Errorf("failed to marshal subscription: %w", err)
	}
	if err := sub.conn.WriteJSON(wsMessage{ID: contractActionsOpID, Type: msgSubscribe, Payload: payload}); err != nil {
		sub.Close()
		return nil, sub.wrap(fmt.Errorf("failed to subscribe: %w", err))
	}
	return sub, nil
}

func (s *IndexerSubscriber) open(ctx context.Context) (*Subscription, error) {
	conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial indexer %s: %w", s.url, err)
	}

	sub := &Subscription{
		conn: conn,
		ctx:  ctx,
		stop: make(chan struct{}),
	}
	sub.wg.Add(1)
	go sub.watch()

	if err := conn.WriteJSON(wsMessage{Type: msgConnectionInit}); err != nil {
		sub.Close()
		return nil, sub.wrap(fmt.Errorf("connection_init failed: %w", err))
	}

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			sub.Close()
			return nil, sub.wrap(fmt.Errorf("waiting for connection_ack: %w", err))
		}
		switch msg.Type {
		case msgConnectionAck:
			return sub, nil
		case msgPing:
			if err := conn.WriteJSON(wsMessage{Type: msgPong}); err != nil {
				sub.Close()
				return nil, sub.wrap(err)
			}
		default:
			sub.Close()
			return nil, fmt.Errorf("unexpected %q before connection_ack", msg.Type)
		}
	}
}

// watch closes the connection once the subscription context is done, unblocking readers
func (s *Subscription) watch() {
	defer s.wg.Done()
	select {
	case <-s.ctx.Done():
		s.conn.Close()
	case <-s.stop:
	}
}

// wrap prefers the context error when the connection was torn down by cancellation
func (s *Subscription) wrap(err error) error {
	if ctxErr := s.ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

// NextContractAction blocks until the indexer reports the next contract action
func (s *Subscription) NextContractAction() (*ContractAction, error) {
	for {
		var msg wsMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			return nil, s.wrap(fmt.Errorf("subscription read failed: %w", err))
		}

		switch msg.Type {
		case msgNext:
			var resp graphQLResponse
			if err := json.Unmarshal(msg.Payload, &resp); err != nil {
				return nil, fmt.Errorf("failed to parse subscription payload: %w", err)
			}
			if len(resp.Errors) > 0 {
				return nil, toGraphQLError(resp.Errors)
			}
			var data struct {
				ContractActions *ContractAction `json:"contractActions"`
			}
			if err := json.Unmarshal(resp.Data, &data); err != nil {
				return nil, fmt.Errorf("failed to decode contract action: %w", err)
			}
			if data.ContractActions == nil {
				continue
			}
			return data.ContractActions, nil
		case msgError:
			var errs []graphQLError
			if err := json.Unmarshal(msg.Payload, &errs); err != nil {
				return nil, fmt.Errorf("subscription failed: %s", string(msg.Payload))
			}
			return nil, toGraphQLError(errs)
		case msgComplete:
			return nil, ErrSubscriptionClosed
		case msgPing:
			if err := s.conn.WriteJSON(wsMessage{Type: msgPong}); err != nil {
				return nil, s.wrap(err)
			}
		}
	}
}

// Close ends the subscription and waits for the watcher to exit
func (s *Subscription) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stop)
		_ = s.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		err = s.conn.Close()
		s.wg.Wait()
	})
	return err
}

func toGraphQLError(errs []graphQLError) error {
	messages := make([]string, len(errs))
	for i, e := range errs {
		messages[i] = e.Message
	}
	return &GraphQLError{Messages: messages}
}
