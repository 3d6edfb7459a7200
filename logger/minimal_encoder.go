package logger

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// Color palette for the console encoder.
const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// Everforest Dark palette (natural forest greens, easy on the eyes for long
// worker-pool / resource-monitor sessions).
type everforestColors struct {
	fg       string
	green    string
	greenDim string
	aqua     string
	orange   string
	yellow   string
	red      string
	redBg    string
	yellowBg string
}

var everforest = everforestColors{
	fg:       "\x1b[38;5;223m",
	green:    "\x1b[38;5;108m",
	greenDim: "\x1b[38;5;65m",
	aqua:     "\x1b[38;5;109m",
	orange:   "\x1b[38;5;208m",
	yellow:   "\x1b[38;5;179m",
	red:      "\x1b[38;5;167m",
	redBg:    "\x1b[48;5;52m",
	yellowBg: "\x1b[48;5;58m",
}

// colorComponent picks a stable color per logger name so that repeated
// components (e.g. "pool.worker.3") are visually grouped across lines.
func colorComponent(name string) string {
	hash := 0
	for _, c := range name {
		hash += int(c)
	}
	switch hash % 3 {
	case 0:
		return everforest.green
	case 1:
		return everforest.greenDim
	default:
		return everforest.orange
	}
}

// minimalEncoder implements a calm, compact console encoder.
// Format: "13:04:35  p.worker.2  job dispatched  JB91a2"
type minimalEncoder struct {
	zapcore.Encoder
	buf *buffer.Buffer
}

func newMinimalEncoder() *minimalEncoder {
	baseEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return &minimalEncoder{
		Encoder: baseEncoder,
		buf:     buffer.NewPool().Get(),
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{
		Encoder: enc.Encoder.Clone(),
		buf:     buffer.NewPool().Get(),
	}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := buffer.NewPool().Get()

	final.AppendString(everforest.greenDim)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	if ent.Level != zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(colorComponent(ent.LoggerName))
		final.AppendString(abbreviateName(ent.LoggerName))
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(colorizeMessage(ent.Message))

	if len(fields) > 0 {
		if rendered := extractFieldValues(fields); rendered != "" {
			final.AppendString("  ")
			final.AppendString(rendered)
		}
	}

	final.AppendString("\n")
	return final, nil
}

func levelColorString(level zapcore.Level) string {
	switch level {
	case zapcore.WarnLevel:
		return colorBold + everforest.yellowBg + everforest.yellow + "WARN" + colorReset
	case zapcore.ErrorLevel:
		return colorBold + everforest.redBg + everforest.red + "ERROR" + colorReset
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return colorBold + everforest.redBg + everforest.red + level.CapitalString() + colorReset
	default:
		return ""
	}
}

// abbreviateName shortens component names: "resource.monitor" -> "r.monitor".
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}

var bracketPattern = regexp.MustCompile(`\[([^\]]+)\]`)

// colorizeMessage highlights bracketed contexts like [job:JB91a2] or
// [resource:fd7] inline within an otherwise plain message.
func colorizeMessage(msg string) string {
	result := strings.Builder{}
	lastIndex := 0

	for _, match := range bracketPattern.FindAllStringSubmatchIndex(msg, -1) {
		textBefore := msg[lastIndex:match[0]]
		if textBefore != "" {
			result.WriteString(everforest.fg)
			result.WriteString(textBefore)
			result.WriteString(colorReset)
		}

		content := msg[match[2]:match[3]]
		color := everforest.orange
		if strings.HasPrefix(content, "job:") || strings.HasPrefix(content, "resource:") {
			color = everforest.aqua
		}
		result.WriteString(color)
		result.WriteString(msg[match[0]:match[1]])
		result.WriteString(colorReset)

		lastIndex = match[1]
	}

	remaining := msg[lastIndex:]
	if remaining != "" {
		result.WriteString(everforest.fg)
		result.WriteString(remaining)
		result.WriteString(colorReset)
	}

	return result.String()
}

func getFieldValue(field zapcore.Field) string {
	if field.Type == zapcore.StringType {
		return field.String
	}
	switch field.Type {
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type,
		zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		return fmt.Sprintf("%d", field.Integer)
	}
	if field.Interface != nil {
		return fmt.Sprintf("%v", field.Interface)
	}
	return ""
}

// extractFieldValues renders the fields most relevant to this library's
// components (job and resource identity, durations, event masks) in a
// compact inline form, and every other field as key=value, so no field is
// dropped.
func extractFieldValues(fields []zapcore.Field) string {
	var values []string

	for _, field := range fields {
		switch field.Key {
		case FieldJobID, FieldResourceID:
			if val := getFieldValue(field); val != "" {
				values = append(values, everforest.aqua+val+colorReset)
			}
		case FieldEventMask, FieldWorkerID:
			if val := getFieldValue(field); val != "" {
				values = append(values, everforest.green+field.Key+"="+val+colorReset)
			}
		case FieldDurationMS:
			if val := getFieldValue(field); val != "" {
				values = append(values, everforest.green+val+colorReset+"ms")
			}
		default:
			if field.Type == zapcore.SkipType {
				continue
			}
			enc := zapcore.NewMapObjectEncoder()
			field.AddTo(enc)
			values = append(values, everforest.fg+field.Key+"="+fmt.Sprint(enc.Fields[field.Key])+colorReset)
		}
	}

	if len(values) == 0 {
		return ""
	}
	return strings.Join(values, " ")
}
