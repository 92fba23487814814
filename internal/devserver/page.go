package devserver

import (
	"html/template"
	"io"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}} · weave</title>
</head>
<body>
<div id="weave-root" data-generation="{{.Generation}}">{{.HTML}}</div>
<script>{{.Script}}</script>
</body>
</html>
`))

// clientScript keeps the page in sync with snapshots and forwards events
// from elements marked with data-on-<event>.
const clientScript = `
(function() {
    'use strict';

    var root = document.getElementById('weave-root');
    var events = ['click', 'dblclick', 'input', 'change', 'submit', 'keydown', 'keyup', 'focus', 'blur'];
    var ws = null;
    var reconnectDelay = 1000;

    function apply(msg) {
        var active = document.activeElement;
        var nid = active && active.dataset ? active.dataset.nid : null;
        root.innerHTML = msg.html;
        root.dataset.generation = msg.generation;
        if (nid) {
            var el = root.querySelector('[data-nid="' + nid + '"]');
            if (el && el.focus) { el.focus(); }
        }
    }

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        ws = new WebSocket(protocol + '//' + location.host + '/ws');
        ws.onopen = function() { reconnectDelay = 1000; };
        ws.onmessage = function(e) {
            var msg;
            try { msg = JSON.parse(e.data); } catch (err) { return; }
            if (msg.type === 'snapshot') { apply(msg); }
            if (msg.type === 'error') { console.error('[weave]', msg.error); }
        };
        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, 30000);
                connect();
            }, reconnectDelay);
        };
    }

    events.forEach(function(type) {
        root.addEventListener(type, function(e) {
            var target = e.target.closest('[data-on-' + type + ']');
            if (!target || !ws || ws.readyState !== 1) { return; }
            if (type === 'submit') { e.preventDefault(); }
            ws.send(JSON.stringify({
                type: 'event',
                node: parseInt(target.dataset.nid, 10),
                event: type,
                value: target.value || ''
            }));
        }, true);
    });

    connect();
})();
`

type pageData struct {
	Title      string
	Generation uint64
	HTML       template.HTML
	Script     template.JS
}

// renderPage writes the live page for snap.
func renderPage(w io.Writer, title string, snap Snapshot) error {
	return pageTemplate.Execute(w, pageData{
		Title:      title,
		Generation: snap.Generation,
		HTML:       template.HTML(snap.HTML),
		Script:     template.JS(clientScript),
	})
}
