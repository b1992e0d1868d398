package request

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/prilive-com/mockcord/backend"
	"github.com/prilive-com/mockcord/discord"
)

type sendParams struct {
	Content string `validate:"max=2000"`
	TTS     bool
	Embeds  []*discord.Embed
	Nonce   string
	Files   []string
}

// SendOption configures SendMessage.
type SendOption func(*sendParams)

// WithTTS marks the message as text-to-speech.
func WithTTS() SendOption {
	return func(p *sendParams) { p.TTS = true }
}

// WithEmbeds attaches rich embeds.
func WithEmbeds(embeds ...*discord.Embed) SendOption {
	return func(p *sendParams) { p.Embeds = embeds }
}

// WithNonce sets the client-supplied nonce echoed back in the payload.
func WithNonce(nonce string) SendOption {
	return func(p *sendParams) { p.Nonce = nonce }
}

// WithFiles uploads the files at the given paths as attachments.
func WithFiles(paths ...string) SendOption {
	return func(p *sendParams) { p.Files = paths }
}

// SendMessage posts a message to a channel as the connected user. The
// connected user needs send_messages in guild channels; DM channels always
// allow it.
func (f *Facade) SendMessage(ctx context.Context, channelID discord.Snowflake, content string, opts ...SendOption) (*discord.Message, error) {
	if err := f.guard("send_message", map[string]any{"channel_id": channelID, "content": content}); err != nil {
		return nil, err
	}
	var p sendParams
	for _, opt := range opts {
		opt(&p)
	}
	p.Content = content
	if err := f.validate.Struct(&p); err != nil {
		return nil, discord.NewValidationError("content", err.Error())
	}

	var attachments []*discord.Attachment
	for _, path := range p.Files {
		att, err := f.backend.MakeAttachment(path)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, att)
	}
	return f.send(channelID, content, p, attachments)
}

func (f *Facade) send(channelID discord.Snowflake, content string, p sendParams, attachments []*discord.Attachment) (*discord.Message, error) {
	ch, err := f.channel("send_message", channelID)
	if err != nil {
		return nil, err
	}
	if err := f.checkPermission("send_message", ch, discord.PermissionSendMessages, "missing send_messages"); err != nil {
		return nil, err
	}

	mopts := []backend.MessageOption{}
	if p.TTS {
		mopts = append(mopts, backend.WithTTS())
	}
	if p.Embeds != nil {
		mopts = append(mopts, backend.WithEmbeds(p.Embeds...))
	}
	if p.Nonce != "" {
		mopts = append(mopts, backend.WithNonce(p.Nonce))
	}
	if attachments != nil {
		mopts = append(mopts, backend.WithAttachments(attachments...))
	}
	return f.backend.MakeMessage(ch, f.selfActor(ch), content, mopts...)
}

// SendFile posts a message carrying one attachment read from r. The stream
// is spooled to a temp file standing in for CDN storage; the attachment
// keeps the given filename.
func (f *Facade) SendFile(ctx context.Context, channelID discord.Snowflake, filename string, r io.Reader, content string, opts ...SendOption) (*discord.Message, error) {
	if err := f.guard("send_file", map[string]any{"channel_id": channelID, "filename": filename}); err != nil {
		return nil, err
	}
	if filename == "" {
		return nil, discord.NewValidationError("filename", "must not be empty")
	}
	var p sendParams
	for _, opt := range opts {
		opt(&p)
	}
	p.Content = content
	if err := f.validate.Struct(&p); err != nil {
		return nil, discord.NewValidationError("content", err.Error())
	}

	spool := filepath.Join(os.TempDir(), fmt.Sprintf("mockcord_%s.dat", uuid.NewString()))
	out, err := os.Create(spool)
	if err != nil {
		return nil, fmt.Errorf("mockcord: spool attachment: %w", err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return nil, fmt.Errorf("mockcord: spool attachment: %w", err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("mockcord: spool attachment: %w", err)
	}

	att, err := f.backend.MakeAttachment(spool)
	if err != nil {
		return nil, err
	}
	att.Filename = filename
	return f.send(channelID, content, p, []*discord.Attachment{att})
}

// EditMessage applies a partial edit to an existing message as the real
// PATCH endpoint would.
func (f *Facade) EditMessage(ctx context.Context, channelID, messageID discord.Snowflake, edit backend.MessageEdit) (*discord.Message, error) {
	if err := f.guard("edit_message", map[string]any{"channel_id": channelID, "message_id": messageID}); err != nil {
		return nil, err
	}
	if _, err := f.message("edit_message", channelID, messageID); err != nil {
		return nil, err
	}
	return f.backend.EditMessage(channelID, messageID, edit)
}

// DeleteMessage removes a message.
func (f *Facade) DeleteMessage(ctx context.Context, channelID, messageID discord.Snowflake) error {
	if err := f.guard("delete_message", map[string]any{"channel_id": channelID, "message_id": messageID}); err != nil {
		return err
	}
	msg, err := f.message("delete_message", channelID, messageID)
	if err != nil {
		return err
	}
	return f.backend.DeleteMessage(msg)
}

// GetMessage fetches one message from a channel's history.
func (f *Facade) GetMessage(ctx context.Context, channelID, messageID discord.Snowflake) (*discord.Message, error) {
	if err := f.guard("get_message", map[string]any{"channel_id": channelID, "message_id": messageID}); err != nil {
		return nil, err
	}
	return f.message("get_message", channelID, messageID)
}

// HistoryOptions selects the history window. At most one of Before, After
// and Around may be set; none of them selects the newest messages.
type HistoryOptions struct {
	Limit  int
	Before *discord.Snowflake
	After  *discord.Snowflake
	Around *discord.Snowflake
}

// History reads a window of the channel's message history in creation
// order. Limit is clamped to 1..100 with a default of 100, and a reference
// id that is not in the history fails like the real endpoint, with a 404.
func (f *Facade) History(ctx context.Context, channelID discord.Snowflake, opts HistoryOptions) ([]*discord.Message, error) {
	if err := f.guard("get_history", map[string]any{"channel_id": channelID, "limit": opts.Limit}); err != nil {
		return nil, err
	}
	if _, err := f.channel("get_history", channelID); err != nil {
		return nil, err
	}
	set := 0
	for _, ref := range []*discord.Snowflake{opts.Before, opts.After, opts.Around} {
		if ref != nil {
			set++
		}
	}
	if set > 1 {
		return nil, discord.NewValidationError("history", "before, after and around are mutually exclusive")
	}

	limit := opts.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	history, _ := f.backend.History(channelID)

	locate := func(ref discord.Snowflake) (int, error) {
		_, idx, ok := lo.FindIndexOf(history, func(m *discord.Message) bool { return m.ID == ref })
		if !ok {
			return 0, discord.NewNotFound("get_history", "unknown message", discord.ErrUnknownMessage)
		}
		return idx, nil
	}

	var start, end int
	switch {
	case opts.Before != nil:
		idx, err := locate(*opts.Before)
		if err != nil {
			return nil, err
		}
		end = idx
		start = max(0, end-limit)
	case opts.After != nil:
		idx, err := locate(*opts.After)
		if err != nil {
			return nil, err
		}
		start = idx + 1
		end = min(len(history), start+limit)
	case opts.Around != nil:
		idx, err := locate(*opts.Around)
		if err != nil {
			return nil, err
		}
		start = max(0, idx-limit/2)
		end = min(len(history), start+limit)
	default:
		end = len(history)
		start = max(0, end-limit)
	}

	out := make([]*discord.Message, end-start)
	copy(out, history[start:end])
	return out, nil
}

// StartPrivateMessage opens (or returns the existing) DM channel with the
// given user.
func (f *Facade) StartPrivateMessage(ctx context.Context, userID discord.Snowflake) (*discord.Channel, error) {
	if err := f.guard("start_private_message", map[string]any{"user_id": userID}); err != nil {
		return nil, err
	}
	u, err := f.backend.User(userID)
	if err != nil {
		return nil, discord.NewNotFound("start_private_message", "unknown user", discord.ErrUnknownUser)
	}
	return f.backend.MakeDMChannel(u)
}

// message resolves a message by channel and id with 404-shaped errors.
func (f *Facade) message(op string, channelID, messageID discord.Snowflake) (*discord.Message, error) {
	history, ok := f.backend.History(channelID)
	if !ok {
		if _, err := f.channel(op, channelID); err != nil {
			return nil, err
		}
		history = nil
	}
	m, ok := lo.Find(history, func(m *discord.Message) bool { return m.ID == messageID })
	if !ok {
		return nil, discord.NewNotFound(op, "unknown message", discord.ErrUnknownMessage)
	}
	return m, nil
}
