// Package overpass synthesizes, executes and normalizes Overpass API
// queries scoped to an administrative bounding box.
package overpass

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"placefinder_backend/internal/area"
	"placefinder_backend/platform/apperr"
	"placefinder_backend/platform/logger"
)

// Completer issues a deterministic completion request.
type Completer interface {
	Complete(ctx context.Context, systemInstruction, userText string) (string, error)
}

// synthesizeInstruction embeds the bounding box corners by name. The
// north-east / south-west spelling keeps the prompt unambiguous about
// which coordinate is which; the Overpass bbox filter itself takes
// (south, west, north, east).
const synthesizeInstruction = `あなたは、OpenStreetMap Overpass APIの専門家アシスタントです。

ユーザーの入力文に対して、アシスタントは次のように返答します：
- 質問に答えるために使用できる有効なOverpass APIクエリのテキスト。クエリは、コードブロックであることを示すために、改行で3つのバッククォートで囲む必要があります。
- APIクエリの範囲は、以下の 北東の経度、北東の緯度、南西の経度、南西の緯度 で指定された範囲にして下さい。
- クエリの出力形式は [out:json] を指定して下さい。

北東の経度: %v
北東の緯度: %v
南西の経度: %v
南西の緯度: %v
`

const synthesizeUserPrefix = "入力文: "

var fencedBlock = regexp.MustCompile("(?s)```(.*?)```")

var languageTag = regexp.MustCompile(`^[A-Za-z]+$`)

// Synthesizer asks the completion service for an Overpass query scoped to
// a bounding box and extracts it from the fenced block in the response.
type Synthesizer struct {
	completer Completer
	log       *logger.Logger
}

func NewSynthesizer(completer Completer, log *logger.Logger) *Synthesizer {
	return &Synthesizer{completer: completer, log: log}
}

// Synthesize produces an Overpass query for the raw query text, scoped to
// bbox. Fails when the response contains no fenced block, which is the
// primary failure mode when the model answers in prose.
func (s *Synthesizer) Synthesize(ctx context.Context, rawText string, bbox area.BoundingBox) (string, error) {
	instruction := fmt.Sprintf(synthesizeInstruction, bbox.MaxLon, bbox.MaxLat, bbox.MinLon, bbox.MinLat)

	raw, err := s.completer.Complete(ctx, instruction, synthesizeUserPrefix+rawText)
	if err != nil {
		return "", err
	}

	query, ok := extractFencedBlock(raw)
	if !ok {
		s.log.Warn("synthesis response contained no fenced block", "responseLength", len(raw))
		return "", apperr.QuerySynthesis("クエリの生成に失敗しました")
	}

	return query, nil
}

// extractFencedBlock returns the content of the first triple-backtick
// block in text. A leading language tag line (e.g. "overpassql") is
// dropped.
func extractFencedBlock(text string) (string, bool) {
	match := fencedBlock.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}

	inner := strings.TrimSpace(match[1])
	if inner == "" {
		return "", false
	}

	if first, rest, found := strings.Cut(inner, "\n"); found && languageTag.MatchString(strings.TrimSpace(first)) {
		inner = strings.TrimSpace(rest)
	}

	if inner == "" {
		return "", false
	}

	return inner, true
}
