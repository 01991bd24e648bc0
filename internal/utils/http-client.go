package utils

import (
	"crypto/tls"
	"net/http"
	"net/url"
	"time"
)

type HTTPClientConfig struct {
	Timeout            time.Duration
	KATimeout          time.Duration
	ProxyURL           string
	ProxyUsername      string
	ProxyPassword      string
	UserAgent          string
	Headers            map[string]string
	InsecureSkipVerify bool // only ever set for the metadata endpoint
}

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type WoofHTTPClient struct {
	client *http.Client
	config HTTPClientConfig
}

func NewWoofHTTPClient(cfg HTTPClientConfig) *WoofHTTPClient {
	if cfg.KATimeout == 0 {
		cfg.KATimeout = 60 * time.Second
	}
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		IdleConnTimeout:     cfg.KATimeout,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		DisableCompression:  true,
	}
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err == nil {
			if cfg.ProxyUsername != "" {
				if cfg.ProxyPassword != "" {
					proxyURL.User = url.UserPassword(cfg.ProxyUsername, cfg.ProxyPassword)
				} else {
					proxyURL.User = url.User(cfg.ProxyUsername)
				}
			}
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}
	return &WoofHTTPClient{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		config: cfg,
	}
}

func (w *WoofHTTPClient) Do(req *http.Request) (*http.Response, error) {
	if w.config.UserAgent != "" {
		req.Header.Set("User-Agent", w.config.UserAgent)
	} else {
		req.Header.Set("User-Agent", ToolUserAgent)
	}
	for k, v := range w.config.Headers {
		req.Header.Set(k, v)
	}
	return w.client.Do(req)
}
