package client

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/exp/slog"

	"otsshare/internal/app/client/config"
	"otsshare/internal/app/client/crypto"
	"otsshare/internal/domain/link"
	"otsshare/internal/domain/record"
)

// App implements the sender and recipient flows: encrypt locally, store
// ciphertext, build the link; and decode the link, fetch, decrypt.
type App struct {
	cfg   *config.Config
	log   *slog.Logger
	api   *httpClient
	codec *link.Codec
}

func New(cfg *config.Config, log *slog.Logger) *App {
	return &App{
		cfg:   cfg,
		log:   log.With("component", "client"),
		api:   newHTTPClient(cfg, log),
		codec: link.DefaultCodec(),
	}
}

type ShareRequest struct {
	Content []byte
	// FileName marks the secret as a file; empty for text.
	FileName string
	Expire   record.ExpirationSettings
	// Password is generated when empty.
	Password string
}

type Share struct {
	Link      string
	Password  string
	RecordID  string
	ExpiresAt time.Time
}

type Secret struct {
	Content   []byte
	Type      record.RecType
	FileName  string
	MimeType  string
	CreatedAt time.Time
}

func (a *App) Ping(ctx context.Context) error {
	return a.api.HealthCheck(ctx)
}

func (a *App) Share(ctx context.Context, req ShareRequest) (*Share, error) {
	if err := req.Expire.Validate(); err != nil {
		return nil, err
	}

	password := req.Password
	if password == "" {
		generated, err := crypto.GeneratePassword(crypto.DefaultPasswordLength)
		if err != nil {
			return nil, err
		}
		password = generated
	}
	// checked before anything is stored; an unusable link would orphan the record
	if strings.Contains(password, ":") {
		return nil, fmt.Errorf("%w: %w", link.ErrEncode, link.ErrSeparatorInField)
	}
	if !utf8.ValidString(password) || !utf8.ValidString(req.FileName) {
		return nil, fmt.Errorf("%w: %w", link.ErrEncode, link.ErrInvalidUTF8)
	}

	ciphertext, err := crypto.Encrypt(req.Content, password)
	if err != nil {
		return nil, fmt.Errorf("encrypt secret: %w", err)
	}

	create := record.CreateRequest{
		Content:  ciphertext,
		ExpireIn: req.Expire,
		Type:     record.RecTypeText,
	}
	if req.FileName != "" {
		mime := mimetype.Detect(req.Content).String()
		create.Type = record.RecTypeFile
		create.MimeType = &mime
	}

	rec, err := a.api.CreateRecord(ctx, create)
	if err != nil {
		return nil, fmt.Errorf("store secret: %w", err)
	}

	shareLink, err := a.codec.Encode(a.cfg.Domain(), rec.ID, password, req.FileName)
	if err != nil {
		return nil, fmt.Errorf("build link: %w", err)
	}

	a.log.Debug("secret shared", "record_id", rec.ID, "type", create.Type, "expires_at", rec.ExpiresAt)

	return &Share{
		Link:      shareLink,
		Password:  password,
		RecordID:  rec.ID,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

// Reveal fetches and decrypts the secret behind rawURL. The server deletes
// the record on read, so a second call fails with ErrSecretGone.
func (a *App) Reveal(ctx context.Context, rawURL string) (*Secret, error) {
	parsed, err := a.codec.Decode(rawURL)
	if err != nil {
		return nil, err
	}

	rec, err := a.api.GetRecord(ctx, parsed.ID)
	if err != nil {
		return nil, err
	}

	plaintext, err := crypto.Decrypt(rec.Content, parsed.Password)
	if err != nil {
		return nil, err
	}

	secret := &Secret{
		Content:   plaintext,
		Type:      rec.Type,
		FileName:  parsed.FileName,
		CreatedAt: rec.CreatedAt,
	}
	if rec.MimeType != nil {
		secret.MimeType = *rec.MimeType
	}

	a.log.Debug("secret revealed", "record_id", rec.ID, "type", rec.Type)
	return secret, nil
}
