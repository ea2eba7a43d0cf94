package httpx

import (
    "errors"

    "dqx0.com/go/httpmsg/httpx/internal/http1"
)

var (
    ErrBadRequest                  = http1.ErrMalformed
    ErrHeaderTooLarge              = http1.ErrHeaderTooLarge
    ErrLineTooLong                 = http1.ErrLineTooLong
    ErrBodyTooLarge                = http1.ErrBodyTooLarge
    ErrUnsupportedTransferEncoding = http1.ErrChunked
    // ErrProtocolViolation reports a well-formed request whose target is
    // not usable: neither origin form, absolute form nor "*".
    ErrProtocolViolation           = errors.New("httpx: protocol violation")
    ErrServerClosed                = errors.New("httpx: server closed")
)
