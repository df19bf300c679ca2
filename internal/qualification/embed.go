package qualification

import _ "embed"

// WidgetJS is the embeddable chat widget served at /widget.js.
//
//go:embed widget.js
var WidgetJS []byte
