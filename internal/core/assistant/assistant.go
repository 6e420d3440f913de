package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/ixugo/goddd/pkg/reason"
)

const systemPrompt = `You are the editing assistant of a video editing platform. You help users with:

- Video editing suggestions and best practices
- Script writing and ideation
- Content strategy for social media
- Technical questions about video editing
- Auto-caption generation guidance

Be helpful, concise, and creative. When users ask about video editing tasks, provide specific, actionable advice.`

// Message 会话中的一条消息
type Message struct {
	Role    string `json:"role"` // user/assistant
	Content string `json:"content"`
}

type ChatInput struct {
	Message  string    `json:"message" binding:"required"`
	Messages []Message `json:"messages"` // 历史会话
}

type ChatOutput struct {
	Reply string `json:"reply"`
}

// Chat 剪辑问答，携带历史会话转发给大模型
func (c *Core) Chat(ctx context.Context, in *ChatInput) (*ChatOutput, error) {
	if !c.IsEnabled() {
		return nil, reason.ErrBadRequest.SetMsg("AI 服务未配置")
	}

	msgs := make([]Message, 0, len(in.Messages)+2)
	msgs = append(msgs, Message{Role: "system", Content: systemPrompt})
	msgs = append(msgs, in.Messages...)
	msgs = append(msgs, Message{Role: "user", Content: in.Message})

	body, _ := json.Marshal(map[string]any{
		"model":       c.conf.ChatModel,
		"messages":    msgs,
		"temperature": 0.7,
		"max_tokens":  500,
	})

	var out struct {
		Choices []struct {
			Message Message `json:"message"`
		} `json:"choices"`
	}
	if err := c.post(ctx, "/chat/completions", "application/json", bytes.NewReader(body), &out); err != nil {
		return nil, err
	}
	if len(out.Choices) == 0 {
		return nil, reason.ErrServer.SetMsg("模型未返回内容")
	}
	return &ChatOutput{Reply: out.Choices[0].Message.Content}, nil
}

// CaptionsOutput 字幕生成结果
type CaptionsOutput struct {
	Transcription string    `json:"transcription"`
	Captions      []Caption `json:"captions"`
	Language      string    `json:"language"`
}

// Captions 语音转字幕
// 调用 whisper 取逐词时间戳，再按短语分组
func (c *Core) Captions(ctx context.Context, audio io.Reader, filename, language string) (*CaptionsOutput, error) {
	if !c.IsEnabled() {
		return nil, reason.ErrBadRequest.SetMsg("AI 服务未配置")
	}
	language = NormalizeLanguage(language)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, reason.ErrServer.Withf("create form err[%s]", err.Error())
	}
	if _, err := io.Copy(fw, audio); err != nil {
		return nil, reason.ErrServer.Withf("copy audio err[%s]", err.Error())
	}
	_ = mw.WriteField("model", c.conf.WhisperModel)
	_ = mw.WriteField("language", language)
	_ = mw.WriteField("response_format", "verbose_json")
	_ = mw.WriteField("timestamp_granularities[]", "word")
	if err := mw.Close(); err != nil {
		return nil, reason.ErrServer.Withf("close form err[%s]", err.Error())
	}

	var out struct {
		Text     string `json:"text"`
		Language string `json:"language"`
		Words    []Word `json:"words"`
	}
	if err := c.post(ctx, "/audio/transcriptions", mw.FormDataContentType(), &buf, &out); err != nil {
		return nil, err
	}

	return &CaptionsOutput{
		Transcription: out.Text,
		Captions:      GroupWords(out.Words, phraseSize),
		Language:      out.Language,
	}, nil
}

func (c *Core) post(ctx context.Context, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.conf.BaseURL+path, body)
	if err != nil {
		return reason.ErrServer.Withf("new request err[%s]", err.Error())
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.conf.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return reason.ErrServer.Withf("ai request err[%s]", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return reason.ErrServer.Withf("ai response status[%d] body[%s]", resp.StatusCode, string(b))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return reason.ErrServer.Withf("decode response err[%s]", err.Error())
	}
	return nil
}
