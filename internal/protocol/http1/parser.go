package http1

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/indigo-web/lite/config"
	"github.com/indigo-web/lite/http"
	"github.com/indigo-web/lite/http/headers"
	"github.com/indigo-web/lite/http/method"
	"github.com/indigo-web/lite/http/query"
	"github.com/indigo-web/lite/http/status"
	"github.com/indigo-web/lite/internal/buffer"
	"github.com/indigo-web/lite/internal/codec"
	"github.com/indigo-web/lite/transport"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
)

var (
	ErrMalformedRequestLine = errors.New("malformed request line")
	ErrLineTooLong          = errors.New("request line or header line is too long")
	ErrHeadTooLarge         = errors.New("request line and headers are too large")
	ErrTooManyHeaders       = errors.New("too many headers")
)

// Parser reads a single request off the connection. It reads line by line, and every line
// must arrive within the read timeout, no matter how many reads it takes.
type Parser struct {
	cfg     *config.Config
	client  transport.Client
	head    *buffer.Buffer
	headers int
}

func NewParser(cfg *config.Config, client transport.Client) *Parser {
	return &Parser{
		cfg:    cfg,
		client: client,
		// every line is a separate segment, so the strings made out of them stay valid
		// until the request is done
		head: buffer.New(cfg.NET.ReadBufferSize, cfg.Headers.MaxHeadSize),
	}
}

// Parse fills the request with the method, path, query arguments, headers and, for POST
// requests, the decoded JSON body. status.HTTPError is returned if the request is
// well-formed, yet can't be accepted. Any other error means the request can't be
// read at all.
func (p *Parser) Parse(request *http.Request) error {
	line, err := p.readLine()
	if err != nil {
		return err
	}

	methodToken, target, _, ok := codec.RequestLine(line)
	if !ok {
		return ErrMalformedRequestLine
	}

	var rawQuery string
	request.Method = method.Parse(methodToken)
	request.Path, rawQuery = query.Split(target)
	request.Args = query.Parse(rawQuery)

	if err = p.parseHeaders(request.Headers); err != nil {
		return err
	}

	if request.Method == method.POST {
		return p.readJSON(request)
	}

	return nil
}

func (p *Parser) parseHeaders(hdrs *headers.Headers) error {
	for {
		line, err := p.readLine()
		switch {
		case errors.Is(err, io.EOF):
			// the peer is done sending, so are the headers
			return nil
		case err != nil:
			return err
		case len(line) == 0:
			return nil
		}

		key, value, ok := codec.SplitHeader(line)
		if !ok {
			continue
		}

		if p.headers++; p.headers > p.cfg.Headers.MaxNumber {
			return ErrTooManyHeaders
		}

		hdrs.Add(key, value)
	}
}

func (p *Parser) readJSON(request *http.Request) error {
	value := request.Headers.Value(headers.ContentLength)
	if len(value) == 0 {
		return nil
	}

	length, err := strconv.Atoi(value)
	if err != nil || length < 0 {
		return status.ErrBadRequest
	}

	if length > p.cfg.Body.MaxSize {
		return status.ErrBodyTooLarge
	}

	body, err := p.readBody(length)
	if err != nil {
		return err
	}

	if len(body) > 0 {
		var model any
		if json.ConfigDefault.Unmarshal(body, &model) == nil {
			request.JSON = model
		}
	}

	return nil
}

// readBody reads exactly n bytes, looping over partial reads.
func (p *Parser) readBody(n int) ([]byte, error) {
	body := make([]byte, 0, n)

	for len(body) < n {
		data, err := p.client.Read()
		if err != nil {
			return nil, err
		}

		take := min(len(data), n-len(body))
		body = append(body, data[:take]...)
		if take < len(data) {
			p.client.Unread(data[take:])
		}
	}

	return body, nil
}

// readLine returns the next line without its terminator. A line cut short by the end of
// the stream is returned as-is, the following call reports io.EOF.
func (p *Parser) readLine() (string, error) {
	deadline := time.Now().Add(p.cfg.NET.ReadTimeout)

	for {
		data, err := p.client.ReadBy(deadline)
		if err != nil {
			if errors.Is(err, io.EOF) && p.head.SegmentLength() > 0 {
				return uf.B2S(p.head.Finish()), nil
			}

			return "", err
		}

		line, rest, found := codec.CutLine(data)
		if !found {
			if err = p.append(data); err != nil {
				return "", err
			}

			continue
		}

		if err = p.append(line); err != nil {
			return "", err
		}

		if len(rest) > 0 {
			p.client.Unread(rest)
		}

		// CR might have come with the previous read
		return uf.B2S(bytes.TrimSuffix(p.head.Finish(), []byte("\r"))), nil
	}
}

func (p *Parser) append(data []byte) error {
	if p.head.SegmentLength()+len(data) > p.cfg.Headers.MaxLineSize {
		return ErrLineTooLong
	}

	if !p.head.Append(data) {
		return ErrHeadTooLarge
	}

	return nil
}
