package render

import "html/template"

// Fragment templates, one per block kind. Trusted markup reaches them as
// template.HTML; everything else is escaped by html/template.
const fragmentTemplates = `
{{- define "paragraph" -}}
<p class="block block--paragraph">{{ .Content }}</p>
{{- end -}}

{{- define "heading-2" -}}
<h2 class="block block--heading"{{ if .ID }} id="{{ .ID }}"{{ end }}>{{ .Content }}</h2>
{{- end -}}

{{- define "heading-3" -}}
<h3 class="block block--heading"{{ if .ID }} id="{{ .ID }}"{{ end }}>{{ .Content }}</h3>
{{- end -}}

{{- define "heading-4" -}}
<h4 class="block block--heading"{{ if .ID }} id="{{ .ID }}"{{ end }}>{{ .Content }}</h4>
{{- end -}}

{{- define "image" -}}
<figure class="block block--image{{ if .FullWidth }} block--full-width{{ end }}">
  <img src="{{ .Src }}" alt="{{ .Alt }}" loading="lazy" decoding="async">
  {{- if .Caption }}
  <figcaption>{{ .Caption }}</figcaption>
  {{- end }}
</figure>
{{- end -}}

{{- define "video" -}}
<div class="block block--video block--ratio-{{ .Ratio }}">
  <video src="{{ .URL }}"{{ if .Title }} title="{{ .Title }}"{{ end }} controls preload="none" loading="lazy"></video>
</div>
{{- end -}}

{{- define "youtube" -}}
<div class="block block--youtube block--ratio-16-9">
  <iframe src="https://www.youtube.com/embed/{{ .VideoID }}" title="{{ .Title }}" loading="lazy" allowfullscreen></iframe>
</div>
{{- end -}}

{{- define "gif" -}}
<figure class="block block--gif">
  <img src="{{ .Src }}" alt="{{ .Alt }}" loading="lazy" decoding="async">
  {{- if .Caption }}
  <figcaption>{{ .Caption }}</figcaption>
  {{- end }}
</figure>
{{- end -}}

{{- define "list" -}}
{{ if .Ordered }}<ol class="block block--list">{{ range .Items }}<li>{{ . }}</li>{{ end }}</ol>
{{- else }}<ul class="block block--list">{{ range .Items }}<li>{{ . }}</li>{{ end }}</ul>{{ end }}
{{- end -}}

{{- define "link-block" -}}
<a class="block block--link" href="{{ .Href }}"{{ if .External }} target="_blank" rel="noopener noreferrer"{{ end }}>
  <span class="block__title">{{ .Text }}</span>
  {{- if .Description }}
  <span class="block__description">{{ .Description }}</span>
  {{- end }}
</a>
{{- end -}}

{{- define "blockquote" -}}
<blockquote class="block block--quote">
  <p>{{ .Content }}</p>
  {{- if .Author }}
  <footer>— <cite>{{ .Author }}</cite>{{ if .Source }}, {{ .Source }}{{ end }}</footer>
  {{- end }}
</blockquote>
{{- end -}}

{{- define "callout" -}}
<aside class="block block--callout block--callout-{{ .Variant }}" role="note">
  {{- if .Title }}
  <div class="block__title">{{ .Title }}</div>
  {{- end }}
  <div class="block__body">{{ .Content }}</div>
</aside>
{{- end -}}

{{- define "code" -}}
<pre class="block block--code"{{ if .Language }} data-language="{{ .Language }}"{{ end }}><code{{ if .Language }} class="language-{{ .Language }}"{{ end }}>{{ .Content }}</code></pre>
{{- end -}}

{{- define "highlight" -}}
<p class="block block--highlight"><mark class="highlight highlight--{{ .Color }}">{{ .Content }}</mark></p>
{{- end -}}

{{- define "divider" -}}
<hr class="block block--divider block--divider-{{ .Style }}">
{{- end -}}

{{- define "feature-grid" -}}
<div class="block block--feature-grid">
  {{- range .Items }}
  <div class="block__feature">
    {{- if .Icon }}
    <span class="block__icon" data-icon="{{ .Icon }}"></span>
    {{- end }}
    <h4 class="block__feature-title">{{ .Title }}</h4>
    <p class="block__feature-description">{{ .Description }}</p>
  </div>
  {{- end }}
</div>
{{- end -}}

{{- define "comparison-table" -}}
<div class="block block--table">
  <table>
    <thead><tr>{{ range .Headers }}<th>{{ . }}</th>{{ end }}</tr></thead>
    <tbody>
      {{- range .Rows }}
      <tr>{{ range . }}<td>{{ . }}</td>{{ end }}</tr>
      {{- end }}
    </tbody>
  </table>
</div>
{{- end -}}

{{- define "styled-text" -}}
<p class="block block--styled font-{{ .Font }} text-{{ .Size }} color-{{ .Color }} weight-{{ .Weight }}">{{ .Content }}</p>
{{- end -}}
`

var fragments = template.Must(template.New("blocks").Parse(fragmentTemplates))
