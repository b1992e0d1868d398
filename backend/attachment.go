package backend

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/prilive-com/mockcord/discord"
)

// MakeAttachment builds an attachment record for a file on disk. The
// resulting url is a file:// URI pointing at the absolute path, standing in
// for the CDN address a real upload would get.
func (b *Backend) MakeAttachment(path string) (*discord.Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, discord.NewValidationError("path", fmt.Sprintf("cannot stat %q: %v", path, err))
	}
	if !info.Mode().IsRegular() {
		return nil, discord.NewValidationError("path", fmt.Sprintf("%q is not a regular file", path))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, discord.NewValidationError("path", fmt.Sprintf("cannot resolve %q: %v", path, err))
	}
	uri := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return NewAttachmentData(b.NextID(), filepath.Base(abs), info.Size(), uri.String()), nil
}
