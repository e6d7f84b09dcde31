package httpx

// indexTemplate is a static page: the board of ?id= and the API summary.
const indexTemplate = `{{define "index"}}<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>minimax chess</title>
<style>
body { font-family: sans-serif; margin: 2em; }
pre { font-size: 1.1em; }
code { background: #eee; padding: 0 .2em; }
</style>
</head>
<body>
<h1>minimax chess</h1>
{{with .View}}
<h2>Game {{.ID}}</h2>
<p>{{.Settings.Mode}}, difficulty {{.Settings.Difficulty}}. {{.Turn}} to move, status {{.Status}}.</p>
<img src="/api/games/{{.ID}}/board.svg" alt="board" width="520" height="520">
<pre>{{$.Board}}</pre>
<p>FEN: <code>{{.FEN}}</code></p>
{{if .History}}<p>Recent moves: {{range .History}}<code>{{.}}</code> {{end}}</p>{{end}}
{{else}}
<p>Create a game with <code>POST /api/games</code>, then open <code>/?id=&lt;game id&gt;</code>.</p>
{{end}}
<h2>API</h2>
<ul>
<li><code>POST /api/games</code> body <code>{"mode","difficulty","humanColor","historySize","fen"}</code></li>
<li><code>GET|DELETE /api/games/{id}</code></li>
<li><code>POST /api/games/{id}/move</code> body <code>{"move":"e2e4"}</code></li>
<li><code>POST /api/games/{id}/promotion</code> body <code>{"piece":"q"}</code></li>
<li><code>POST /api/games/{id}/undo</code>, <code>POST /api/games/{id}/reset</code></li>
<li><code>GET /api/games/{id}/moves?square=g1</code></li>
<li><code>GET /api/games/{id}/fen</code>, <code>board.svg</code>, <code>board.txt</code></li>
</ul>
<script type="application/json" id="defaults">{{.Defaults}}</script>
</body>
</html>
{{end}}`
