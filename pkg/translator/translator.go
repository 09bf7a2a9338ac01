// Package translator 翻译服务链：按顺序尝试多个翻译服务，全部失败时返回原文。
package translator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"smart_quiz_backend/internal/config"
	"smart_quiz_backend/internal/model"
	"smart_quiz_backend/pkg/logger"
	"smart_quiz_backend/pkg/monitoring"
	"smart_quiz_backend/pkg/tracing"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const DefaultTimeout = 10 * time.Second

// Provider 单个翻译服务
type Provider interface {
	Name() string
	Translate(ctx context.Context, text, source, target string) (string, error)
}

type Options struct {
	Timeout           time.Duration
	LibreTranslateURL string
	LibreTranslateKey string
	GoogleAPIKey      string
	GoogleURL         string
	MyMemoryURL       string
	MyMemoryEmail     string
}

func OptionsFromConfig(cfg config.TranslationConfig) Options {
	return Options{
		Timeout:           cfg.Timeout(),
		LibreTranslateURL: cfg.LibreTranslateURL,
		LibreTranslateKey: cfg.LibreTranslateKey,
		GoogleAPIKey:      cfg.GoogleAPIKey,
		GoogleURL:         cfg.GoogleURL,
		MyMemoryURL:       cfg.MyMemoryURL,
		MyMemoryEmail:     cfg.MyMemoryEmail,
	}
}

// BuildProviders 顺序：LibreTranslate（配置了地址）→ Google（配置了 key）→ MyMemory（总是启用）
func BuildProviders(opts Options, client *http.Client) []Provider {
	var providers []Provider
	if opts.LibreTranslateURL != "" {
		providers = append(providers, NewLibreTranslate(client, opts.LibreTranslateURL, opts.LibreTranslateKey))
	}
	if opts.GoogleAPIKey != "" {
		providers = append(providers, NewGoogle(client, opts.GoogleURL, opts.GoogleAPIKey))
	}
	providers = append(providers, NewMyMemory(client, opts.MyMemoryURL, opts.MyMemoryEmail))
	return providers
}

// NewHTTPClient 翻译请求共用的客户端，超时由每次调用的 context 控制
func NewHTTPClient() *http.Client {
	return &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
}

type chainState struct {
	providers []Provider
	timeout   time.Duration
}

// Chain 可并发使用，Reload 原子替换服务列表
type Chain struct {
	state    atomic.Pointer[chainState]
	client   *http.Client
	cache    Cache
	cacheTTL time.Duration
}

func NewChain(opts Options, client *http.Client) *Chain {
	if client == nil {
		client = NewHTTPClient()
	}
	c := &Chain{client: client}
	c.Reload(opts)
	return c
}

// NewChainWithProviders 直接指定服务列表，主要用于测试和脚本
func NewChainWithProviders(timeout time.Duration, providers ...Provider) *Chain {
	c := &Chain{client: NewHTTPClient()}
	c.setState(providers, timeout)
	return c
}

// WithCache 只缓存翻译服务成功的结果
func (c *Chain) WithCache(cache Cache, ttl time.Duration) *Chain {
	c.cache = cache
	c.cacheTTL = ttl
	return c
}

func (c *Chain) Reload(opts Options) {
	c.setState(BuildProviders(opts, c.client), opts.Timeout)
}

func (c *Chain) setState(providers []Provider, timeout time.Duration) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c.state.Store(&chainState{providers: providers, timeout: timeout})
}

func (c *Chain) ProviderNames() []string {
	st := c.state.Load()
	names := make([]string, 0, len(st.providers))
	for _, p := range st.providers {
		names = append(names, p.Name())
	}
	return names
}

// Translate 不返回错误：源语言与目标语言相同或文本为空时直接返回，全部服务失败时返回原文
func (c *Chain) Translate(ctx context.Context, text, source, target string) string {
	source = model.NormalizeLanguageCode(source)
	target = model.NormalizeLanguageCode(target)
	if source == target || strings.TrimSpace(text) == "" {
		return text
	}

	ctx, span := tracing.StartSpan(ctx, "translator.Translate")
	defer span.End()
	span.SetAttributes(
		attribute.String("translate.source", source),
		attribute.String("translate.target", target),
	)

	key := cacheKey(text, source, target)
	if c.cache != nil {
		if cached, ok, err := c.cache.Get(ctx, key); err != nil {
			logger.Log.Debug("Translation cache read failed", zap.Error(err))
		} else if ok {
			span.SetAttributes(attribute.Bool("translate.cache_hit", true))
			return cached
		}
	}

	st := c.state.Load()
	for _, p := range st.providers {
		if ctx.Err() != nil {
			break
		}
		out, err := c.call(ctx, p, st.timeout, text, source, target)
		if err != nil {
			logger.Log.Warn("Translation provider failed, trying next",
				zap.String("provider", p.Name()),
				zap.String("source", source),
				zap.String("target", target),
				zap.Error(err),
			)
			continue
		}
		span.SetAttributes(attribute.String("translate.provider", p.Name()))
		if c.cache != nil {
			if err := c.cache.Set(ctx, key, out, c.cacheTTL); err != nil {
				logger.Log.Debug("Translation cache write failed", zap.Error(err))
			}
		}
		return out
	}

	monitoring.TranslationFallbacks.Inc()
	logger.Log.Warn("All translation providers failed, using source text",
		zap.String("source", source),
		zap.String("target", target),
	)
	return text
}

func (c *Chain) call(ctx context.Context, p Provider, timeout time.Duration, text, source, target string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	out, err := p.Translate(callCtx, text, source, target)
	if err == nil && strings.TrimSpace(out) == "" {
		err = ErrEmptyResult
	}
	monitoring.ObserveTranslation(p.Name(), start, err)
	if err != nil {
		return "", err
	}
	return out, nil
}

func cacheKey(text, source, target string) string {
	sum := sha256.Sum256([]byte(text))
	return "translate:" + source + ":" + target + ":" + hex.EncodeToString(sum[:])
}
