package request

import (
	"context"

	"github.com/samber/lo"

	"github.com/prilive-com/mockcord/discord"
)

// PinMessage pins a message in its channel.
func (f *Facade) PinMessage(ctx context.Context, channelID, messageID discord.Snowflake) error {
	if err := f.guard("pin_message", map[string]any{"channel_id": channelID, "message_id": messageID}); err != nil {
		return err
	}
	if _, err := f.message("pin_message", channelID, messageID); err != nil {
		return err
	}
	return f.backend.PinMessage(channelID, messageID)
}

// UnpinMessage unpins a message in its channel.
func (f *Facade) UnpinMessage(ctx context.Context, channelID, messageID discord.Snowflake) error {
	if err := f.guard("unpin_message", map[string]any{"channel_id": channelID, "message_id": messageID}); err != nil {
		return err
	}
	if _, err := f.message("unpin_message", channelID, messageID); err != nil {
		return err
	}
	return f.backend.UnpinMessage(channelID, messageID)
}

// PinsFrom lists the channel's pinned messages in creation order.
func (f *Facade) PinsFrom(ctx context.Context, channelID discord.Snowflake) ([]*discord.Message, error) {
	if err := f.guard("get_pins", map[string]any{"channel_id": channelID}); err != nil {
		return nil, err
	}
	if _, err := f.channel("get_pins", channelID); err != nil {
		return nil, err
	}
	history, _ := f.backend.History(channelID)
	return lo.Filter(history, func(m *discord.Message, _ int) bool { return m.Pinned }), nil
}
