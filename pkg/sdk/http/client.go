// Package http 提供基于 resty 的 REST 客户端封装
package http

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// Client REST 客户端
// resty 会自动从环境变量读取代理配置（HTTP_PROXY / HTTPS_PROXY）
type Client struct {
	client *resty.Client
}

// NewClient 创建新的 REST 客户端
func NewClient(baseURL string, timeout time.Duration) *Client {
	baseURL = strings.TrimSuffix(baseURL, "/")
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "godash/1.0")

	return &Client{client: client}
}

// newRequest 构造带 context 的请求
func (c *Client) newRequest(ctx context.Context) *resty.Request {
	r := c.client.R()
	if ctx != nil {
		r.SetContext(ctx)
	}
	return r
}

// Get 发起 GET 请求并把响应解析到 out
// params 为查询参数，可为 nil
func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string, out any) error {
	r := c.newRequest(ctx)
	if len(params) > 0 {
		r.SetQueryParams(params)
	}
	if out != nil {
		r.SetResult(out)
	}
	resp, err := r.Get(endpoint)
	return checkResponse(resp, err, endpoint)
}

// Post 发起 POST 请求（JSON body 可为 nil）并把响应解析到 out
func (c *Client) Post(ctx context.Context, endpoint string, body any, out any) error {
	r := c.newRequest(ctx)
	if body != nil {
		r.SetHeader("Content-Type", "application/json")
		r.SetBody(body)
	}
	if out != nil {
		r.SetResult(out)
	}
	resp, err := r.Post(endpoint)
	return checkResponse(resp, err, endpoint)
}

// checkResponse 统一处理传输错误和非 2xx 状态
func checkResponse(resp *resty.Response, err error, endpoint string) error {
	if err != nil {
		return errors.Wrapf(err, "请求失败: %s", endpoint)
	}
	if !resp.IsSuccess() {
		return errors.Errorf("http 非 2xx: %s -> %s: %s", endpoint, resp.Status(), strings.TrimSpace(string(resp.Body())))
	}
	return nil
}
