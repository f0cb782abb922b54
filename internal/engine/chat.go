package engine

import (
	"context"

	"github.com/go-resty/resty/v2"
)

// Wire types of the chat completions API shared by OpenAI and Azure OpenAI.

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// chatEndpoint describes where and how to send one chat completion.
type chatEndpoint struct {
	url     string
	model   string
	headers map[string]string
	query   map[string]string
}

func chatComplete(ctx context.Context, client *resty.Client, ep chatEndpoint, system string, turns []string) (string, error) {
	messages := make([]chatMessage, 0, len(turns)+1)
	messages = append(messages, chatMessage{Role: "system", Content: system})
	for _, t := range turns {
		messages = append(messages, chatMessage{Role: "user", Content: t})
	}

	var out chatResponse
	var apiErr errorBody
	resp, err := client.R().
		SetContext(ctx).
		SetHeaders(ep.headers).
		SetQueryParams(ep.query).
		SetBody(chatRequest{Model: ep.model, Messages: messages}).
		SetResult(&out).
		SetError(&apiErr).
		Post(ep.url)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", newAPIError(resp, &apiErr)
	}

	if len(out.Choices) == 0 || out.Choices[0].Message.Content == nil {
		return "", ErrEmptyResponse
	}
	return *out.Choices[0].Message.Content, nil
}
