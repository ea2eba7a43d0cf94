package httpx

// Method is an HTTP request method. Values follow the numbering of the
// method table below; MethodInvalid marks a string that matched no entry.
type Method uint8

const (
	MethodDelete Method = iota
	MethodGet
	MethodHead
	MethodPost
	MethodPut
	// pathological
	MethodConnect
	MethodOptions
	MethodTrace
	// WebDAV
	MethodCopy
	MethodLock
	MethodMkcol
	MethodMove
	MethodPropfind
	MethodProppatch
	MethodSearch
	MethodUnlock
	MethodBind
	MethodRebind
	MethodUnbind
	MethodACL
	// subversion
	MethodReport
	MethodMkactivity
	MethodCheckout
	MethodMerge
	// upnp
	MethodMSearch
	MethodNotify
	MethodSubscribe
	MethodUnsubscribe
	// RFC 5789
	MethodPatch
	MethodPurge
	// CalDAV
	MethodMkcalendar
	// RFC 2068, section 19.6.1.2
	MethodLink
	MethodUnlink
	// icecast
	MethodSource

	MethodInvalid
)

var methodNames = [...]string{
	MethodDelete:      "DELETE",
	MethodGet:         "GET",
	MethodHead:        "HEAD",
	MethodPost:        "POST",
	MethodPut:         "PUT",
	MethodConnect:     "CONNECT",
	MethodOptions:     "OPTIONS",
	MethodTrace:       "TRACE",
	MethodCopy:        "COPY",
	MethodLock:        "LOCK",
	MethodMkcol:       "MKCOL",
	MethodMove:        "MOVE",
	MethodPropfind:    "PROPFIND",
	MethodProppatch:   "PROPPATCH",
	MethodSearch:      "SEARCH",
	MethodUnlock:      "UNLOCK",
	MethodBind:        "BIND",
	MethodRebind:      "REBIND",
	MethodUnbind:      "UNBIND",
	MethodACL:         "ACL",
	MethodReport:      "REPORT",
	MethodMkactivity:  "MKACTIVITY",
	MethodCheckout:    "CHECKOUT",
	MethodMerge:       "MERGE",
	MethodMSearch:     "M-SEARCH",
	MethodNotify:      "NOTIFY",
	MethodSubscribe:   "SUBSCRIBE",
	MethodUnsubscribe: "UNSUBSCRIBE",
	MethodPatch:       "PATCH",
	MethodPurge:       "PURGE",
	MethodMkcalendar:  "MKCALENDAR",
	MethodLink:        "LINK",
	MethodUnlink:      "UNLINK",
	MethodSource:      "SOURCE",
}

var methodsByName = func() map[string]Method {
	m := make(map[string]Method, len(methodNames))
	for i, name := range methodNames {
		m[name] = Method(i)
	}
	return m
}()

// MethodFromString returns the method whose canonical name is exactly s.
// Method names are case-sensitive: "get" yields MethodInvalid.
func MethodFromString(s string) Method {
	if m, ok := methodsByName[s]; ok {
		return m
	}
	return MethodInvalid
}

// MethodFromBytes is MethodFromString for parser input.
func MethodFromBytes(b []byte) Method {
	// the compiler does not allocate for a map index by string(b)
	if m, ok := methodsByName[string(b)]; ok {
		return m
	}
	return MethodInvalid
}

// String returns the canonical method name, or "<invalid>" for values
// outside the table.
func (m Method) String() string {
	if int(m) < len(methodNames) {
		return methodNames[m]
	}
	return "<invalid>"
}

// Valid reports whether m is a method from the table.
func (m Method) Valid() bool { return m < MethodInvalid }
