package html

const docblockTemplate = `<div class="dt-doc-summary">{{.Summary}}</div>
{{- if .HasDescription}}<div class="dt-doc-description">{{.Description}}</div>{{end}}
{{- range .Tables}}
<table class="dt-doc-tags-table dt-tags-table-{{.Kind}}">
{{- range .Rows}}
<tr><td class="dt-doc-tag-name">@{{.Name}}</td>
{{- range .Columns}}<td class="{{.Class}}">
{{- if .Types}}{{range $i, $t := .Types}}{{if $i}}|{{end}}<span>{{$t}}</span>{{end}}{{else}}{{.Text}}{{end -}}
</td>{{end}}</tr>
{{- end}}
</table>
{{- end}}`

const pageTemplate = `<!DOCTYPE html>
<html dir="ltr" lang="en" class="docTracer">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}} Documentation</title>
<style>` + pageStyle + `</style>
</head>
<body>
<div id="docTracer" class="dt-wrapper">
<h1 class="dt-head">{{.Title}} <span class="dt-tagline">{{.Tagline}}</span></h1>
<table class="dt-table">
<thead>
<tr>
<th class="dt-col-namespace">Namespace</th>
<th class="dt-col-class">Class</th>
<th class="dt-col-member">Constant | Property | Method</th>
<th class="dt-col-docs">Documentation</th>
</tr>
</thead>
<tbody>
{{- range .Rows}}
<tr class="{{.Class}}">
{{- range .Cells}}{{template "cell" .}}{{end}}
</tr>
{{- end}}
</tbody>
</table>
<div class="dt-footer dt-gray">
{{.Footer}}<br>
<span class="dt-counts">{{.Counts}}</span><br>
Generated by DocTracer v{{.Version}} at <span class="dt-created">{{.Created}}</span>
</div>
<a class="dt-toTop" href="#docTracer">^Top</a>
</div>
</body>
</html>
{{define "cell"}}
{{- if eq .Kind "namespace"}}
<td class="{{.Role}}" rowspan="{{.RowSpan}}">
<span id="{{.Anchor}}" title="{{.Title}}" class="dt-anchor dt-anchor-namespace"></span>
<div class="dt-namespace">{{.Text}}</div>
</td>
{{- else if eq .Kind "class"}}
<td class="{{.Role}}" rowspan="{{.RowSpan}}">
<span id="{{.Anchor}}" title="{{.Title}}" class="dt-anchor dt-anchor-class"></span>
<div class="dt-class">{{with .Class}}{{if .Modifiers}}<span class="dt-class-modifier">{{.Modifiers}}</span> {{end}}<span class="dt-class-kind">{{.Kind}}</span> <abbr title="{{.File}}">{{.Name}}</abbr>{{end}}</div>
{{- with .Class}}
{{- if .Parent}}<div class="dt-class-extend"><span class="dt-class-modifier">extends</span> {{.Parent}}</div>{{end}}
{{- if .Interfaces}}<div class="dt-class-interface"><span class="dt-class-modifier">implements</span> {{.Interfaces}}</div>{{end}}
{{- end}}
</td>
{{- else if eq .Kind "classdoc"}}
<td colspan="{{.ColSpan}}" class="{{.Role}} striped">{{.Doc}}</td>
{{- else if eq .Kind "member"}}
<td class="{{.Role}} striped">
<span id="{{.Anchor}}" title="{{.Title}}" class="dt-anchor dt-anchor-{{.Member.Kind}}"></span>
{{- with .Member}}
{{- if .Modifiers}}<span class="dt-member-modifier">{{.Modifiers}}</span> {{end}}
{{- if eq .Kind "constant"}}<span class="dt-constant-keyword">const</span> {{end}}
{{- if eq .Kind "method"}}<span class="dt-method-name">{{.Name}}</span>(
{{- if .Params}}<div class="dt-param-block">
{{- range .Params}}<div class="dt-param-row">
{{- if .Type}}<span class="dt-param-type">{{.Type}}</span> {{end}}<span class="dt-param-name">{{.Name}}</span>
{{- if .Default}}<span class="dt-param-default"> = {{.Default}}</span>{{end}}
{{- if not .Last}}<span class="dt-gray">,</span>{{end}}</div>
{{- end}}</div>{{end}})
{{- if .Type}}<span class="dt-method-return">: {{.Type}}</span>{{end}}
{{- else}}
{{- if .Type}}<span class="dt-member-type">{{.Type}}</span> {{end}}<span class="dt-member-name">{{.Name}}</span>
{{- if .Default}} = <span class="dt-member-value">{{.Default}}</span>{{end}}<span class="dt-gray">;</span>
{{- end}}
{{- end}}
</td>
{{- else if eq .Kind "doc"}}
<td class="{{.Role}} striped">{{if .DocEmpty}}<span class="dt-doc-na">n/a</span>{{else}}{{.Doc}}{{end}}</td>
{{- end}}
{{- end}}`

const pageStyle = `
:root {
  --font-family-code: Consolas, Menlo, Monaco, "Liberation Mono", "Courier New", monospace;
  --color-name: #9c27b0;
  --color-modifier: #ff9800;
  --color-keyword: #b71c1c;
  --color-type: #0796d6;
}
html { font-family: var(--font-family-code); font-size: 13px; line-height: 1.5em; color: #333; }
body { margin: 0; }
.dt-wrapper { padding: 1em 2em; }
.dt-tagline, .dt-gray { color: #999; }
.dt-table { width: 100%; border-collapse: collapse; }
.dt-table th, .dt-table td { vertical-align: top; padding: 6px 8px; text-align: left; }
.dt-table thead th { border-bottom: 2px solid #ccc; }
tr.dt-group-namespace > td { border-top: 2px solid #999; }
tr.dt-group-class > td { border-top: 1px solid #ccc; }
.dt-namespace { color: #2e9900; font-weight: bold; }
.dt-class abbr { color: #3f51b5; font-weight: bold; text-decoration: none; }
.dt-class-modifier, .dt-member-modifier { color: var(--color-modifier); }
.dt-class-kind, .dt-constant-keyword { color: var(--color-keyword); }
.dt-member-name, .dt-method-name { color: var(--color-name); }
.dt-member-type, .dt-param-type, .dt-method-return, .dt-doc-tag-type span { color: var(--color-type); }
.dt-param-block { padding-left: 2em; }
.dt-doc-na { color: #bbb; font-style: italic; }
.dt-doc-tags-table td { padding: 0 1em 0 0; }
.dt-doc-tag-name { color: #673ab7; }
.dt-doc-tag-variable { color: var(--color-keyword); }
.dt-footer { margin-top: 2em; font-size: 0.9em; }
.dt-toTop { position: fixed; right: 1em; bottom: 1em; }
`
