package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"schemecard/internal/export"
	"schemecard/internal/files"
	"schemecard/internal/services"
	"schemecard/internal/shell"
)

const helpText = `Commands:
  upload <path>     load a photo (PNG, JPEG, WebP, ...; max size applies)
  name <text>       set the card name (empty clears it)
  desc <text>       set the card description (empty clears it)
  zoom <n>          zoom the photo, 1 = cover
  x <n> / y <n>     pan the photo in pixels
  pan <x> <y>       set both pan offsets
  reset             restore zoom 1 and pan 0,0
  export jpg|png    save the card to the output directory
  state             show the current card settings
  help              show this list
  quit              leave`

type CommandHandler struct {
	editor *services.EditorService
	shell  shell.Shell
	logger *slog.Logger
}

func NewCommandHandler(editor *services.EditorService, sh shell.Shell, logger *slog.Logger) *CommandHandler {
	return &CommandHandler{
		editor: editor,
		shell:  sh,
		logger: logger,
	}
}

// HandleCommand applies one line of user input. It returns shell.ErrStop on
// quit; other errors have already been reported to the user.
func (h *CommandHandler) HandleCommand(ctx context.Context, line string) error {
	cmd, arg := splitCommand(line)

	switch cmd {
	case "upload":
		return h.handleUpload(ctx, arg)
	case "name":
		return h.handleText(ctx, "Name", arg, h.editor.SetName)
	case "desc", "description":
		return h.handleText(ctx, "Description", arg, h.editor.SetDescription)
	case "zoom":
		return h.handleNumber(ctx, arg, h.editor.SetZoom, "🔍 Zoom set to %g.")
	case "x":
		return h.handleNumber(ctx, arg, h.editor.SetOffsetX, "↔️ Horizontal offset set to %g.")
	case "y":
		return h.handleNumber(ctx, arg, h.editor.SetOffsetY, "↕️ Vertical offset set to %g.")
	case "pan":
		return h.handlePan(ctx, arg)
	case "reset":
		if err := h.editor.ResetAdjustments(); err != nil {
			return h.fail(ctx, "reset failed", "🚧 Error while resetting.", err)
		}
		return h.reply(ctx, "🔄 Zoom and pan reset.")
	case "export", "save":
		return h.handleExport(ctx, arg)
	case "state", "status":
		return h.reply(ctx, h.describeState())
	case "help", "?":
		return h.reply(ctx, helpText)
	case "quit", "exit":
		_ = h.reply(ctx, "👋 Bye!")
		return shell.ErrStop
	}

	return h.reply(ctx, fmt.Sprintf("❓ Unknown command %q. Type help for the list.", cmd))
}

func (h *CommandHandler) handleUpload(ctx context.Context, ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return h.reply(ctx, "❌ Please give a file path: upload <path>")
	}

	_ = h.reply(ctx, "⏳ Loading image...")
	err := h.editor.Upload(ctx, ref)
	switch {
	case err == nil:
		return h.reply(ctx, "✅ Image loaded. Zoom and pan were reset.")
	case errors.Is(err, files.ErrNotImage):
		return h.fail(ctx, "upload rejected", "❌ Please choose an image file.", err)
	case errors.Is(err, files.ErrTooLarge):
		return h.fail(ctx, "upload rejected", "❌ That file is too large.", err)
	case errors.Is(err, files.ErrDecode):
		return h.fail(ctx, "upload decode failed", "🚧 Could not read that image.", err)
	}
	return h.fail(ctx, "upload failed", "🚧 Error while loading the image.", err)
}

func (h *CommandHandler) handleText(ctx context.Context, label, text string, set func(string) error) error {
	if err := set(text); err != nil {
		return h.fail(ctx, "render failed", "🚧 Error while rendering the card.", err)
	}
	if text == "" {
		return h.reply(ctx, fmt.Sprintf("🧹 %s cleared.", label))
	}
	return h.reply(ctx, fmt.Sprintf("✏️ %s set (%d chars).", label, utf8.RuneCountInString(text)))
}

func (h *CommandHandler) handleNumber(ctx context.Context, arg string, set func(float64) error, okMsg string) error {
	arg = strings.TrimSpace(arg)
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return h.reply(ctx, fmt.Sprintf("❌ %q is not a number.", arg))
	}
	if err := set(v); err != nil {
		return h.numberError(ctx, err)
	}
	return h.reply(ctx, fmt.Sprintf(okMsg, v))
}

func (h *CommandHandler) handlePan(ctx context.Context, arg string) error {
	fields := strings.Fields(arg)
	if len(fields) != 2 {
		return h.reply(ctx, "❌ Usage: pan <x> <y>")
	}
	x, errX := strconv.ParseFloat(fields[0], 64)
	y, errY := strconv.ParseFloat(fields[1], 64)
	if errX != nil || errY != nil {
		return h.reply(ctx, "❌ Pan offsets must be numbers.")
	}
	if err := h.editor.SetPan(x, y); err != nil {
		return h.numberError(ctx, err)
	}
	return h.reply(ctx, fmt.Sprintf("✋ Pan set to (%g, %g).", x, y))
}

func (h *CommandHandler) numberError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidZoom):
		return h.reply(ctx, "❌ Zoom must be at least 1.")
	case errors.Is(err, services.ErrInvalidOffset):
		return h.reply(ctx, "❌ Offsets must be finite numbers.")
	}
	return h.fail(ctx, "render failed", "🚧 Error while rendering the card.", err)
}

func (h *CommandHandler) handleExport(ctx context.Context, arg string) error {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		arg = "jpg"
	}
	format, err := export.ParseFormat(arg)
	if err != nil {
		return h.reply(ctx, "❌ Export format must be jpg or png.")
	}

	_ = h.reply(ctx, fmt.Sprintf("⏳ Preparing %s...", format))
	path, err := h.editor.Export(format)
	if errors.Is(err, services.ErrExportBusy) {
		return h.reply(ctx, "😵‍💫 Slow down, that export is still going.")
	}
	if err != nil {
		return h.fail(ctx, "export failed", "🚧 Export failed, nothing was saved.", err)
	}
	return h.reply(ctx, fmt.Sprintf("✅ Saved %s", path))
}

func (h *CommandHandler) describeState() string {
	st := h.editor.Snapshot()

	image := "none"
	if st.UserImage != nil {
		b := st.UserImage.Bounds()
		image = fmt.Sprintf("%dx%d", b.Dx(), b.Dy())
	}

	var sb strings.Builder
	sb.WriteString("🎴 Card\n")
	fmt.Fprintf(&sb, "  name:        %q (%d chars)\n", st.CardName, utf8.RuneCountInString(st.CardName))
	fmt.Fprintf(&sb, "  description: %q (%d chars)\n", st.CardDescription, utf8.RuneCountInString(st.CardDescription))
	fmt.Fprintf(&sb, "  image:       %s\n", image)
	fmt.Fprintf(&sb, "  zoom:        %g\n", st.ImageZoom)
	fmt.Fprintf(&sb, "  pan:         (%g, %g)\n", st.ImageOffsetX, st.ImageOffsetY)
	fmt.Fprintf(&sb, "  export:      jpg %s, png %s", h.editor.ExportStatus(export.JPEG), h.editor.ExportStatus(export.PNG))
	return sb.String()
}

func (h *CommandHandler) reply(ctx context.Context, text string) error {
	return h.shell.SendText(ctx, text)
}

func (h *CommandHandler) fail(ctx context.Context, logMsg, userMsg string, err error) error {
	h.logger.Warn(logMsg, "error", err)
	_ = h.shell.SendText(ctx, userMsg)
	return err
}

// splitCommand separates the command word from the rest of the line. Only
// the single space after the command is consumed; the argument is returned
// exactly as typed so names and descriptions keep their spacing.
func splitCommand(line string) (string, string) {
	line = strings.TrimLeft(line, " \t")
	cmd, arg, _ := strings.Cut(line, " ")
	return strings.ToLower(strings.TrimSpace(cmd)), arg
}
