package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/jlaffaye/ftp"
)

// Upstream returns the current vendor listings.
type Upstream interface {
	Listings(ctx context.Context) ([]Listing, error)
}

type FTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Path     string
	Timeout  time.Duration
}

// FTPSource downloads the vendor export from the agency FTP account.
type FTPSource struct {
	cfg FTPConfig
}

const maxFeedSize = 32 << 20

func NewFTPSource(cfg FTPConfig) *FTPSource {
	if cfg.Port == 0 {
		cfg.Port = 21
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &FTPSource{cfg: cfg}
}

func (s *FTPSource) Listings(ctx context.Context) ([]Listing, error) {
	b, err := s.download(ctx)
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(b))
}

func (s *FTPSource) download(ctx context.Context) ([]byte, error) {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	c, err := ftp.Dial(addr, ftp.DialWithContext(ctx), ftp.DialWithTimeout(s.cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("ftp dial %s: %w", addr, err)
	}
	defer c.Quit() //nolint:errcheck

	if err := c.Login(s.cfg.User, s.cfg.Password); err != nil {
		return nil, fmt.Errorf("ftp login: %w", err)
	}
	r, err := c.Retr(s.cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("ftp retr %s: %w", s.cfg.Path, err)
	}
	defer r.Close() //nolint:errcheck

	b, err := io.ReadAll(io.LimitReader(r, maxFeedSize+1))
	if err != nil {
		return nil, fmt.Errorf("ftp read: %w", err)
	}
	if len(b) > maxFeedSize {
		return nil, fmt.Errorf("ftp read: feed larger than %d bytes", maxFeedSize)
	}
	return b, nil
}
