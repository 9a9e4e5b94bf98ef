package jpeg

// Options controls how Parse and Read behave; Decode always uses the
// defaults. The zero value (or a nil *Options) is a usable default:
// warnings are not logged and strict validation is off.
type Options struct {
    Warn    bool    // log non-fatal anomalies (redefined tables, bytes after EOI)
    Strict  bool    // reject anomalies that Warn would otherwise just log
    Logger  Logger  // where Warn output goes; defaults to a stderr logger
}

func (o *Options) logger() Logger {
    if o == nil || o.Logger == nil {
        return defaultLogger()
    }
    return o.Logger
}

func (o *Options) warn() bool {
    return o != nil && o.Warn
}

func (o *Options) strict() bool {
    return o != nil && o.Strict
}
