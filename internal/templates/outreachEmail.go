package templates

const outreachEmail = `
<div>
	<p style="font-size:14px; color:#000000; margin:0 0 12px 0;">
		Hi {{Contact}},
	</p>
	<p style="font-size:14px; color:#000000; margin:0 0 12px 0; white-space:pre-line;">
		{{Body}}
	</p>
	<p style="font-size:14px; color:#000000; margin:0 0 12px 0;">
		Best,<br/>
		{{CreatorName}}
	</p>
	<p style="font-size:12px; color:#848e92; margin:24px 0 0 0;">
		Sent via ManAIger on behalf of {{CreatorName}}
	</p>
</div>
`

const paymentReceivedEmail = `
<div>
	<p style="font-size:14px; color:#000000; margin:0 0 12px 0;">
		Hey {{Name}},
	</p>
	<p style="font-size:14px; color:#000000; margin:0 0 12px 0;">
		Good news: the invoice for <b>{{Brand}}</b> ({{Amount}} {{Currency}}) was just marked paid. The deal has been moved to PAID and closed out.
	</p>
	<p style="font-size:14px; color:#000000; margin:0 0 12px 0;">
		You can review the full history on your deals page.
	</p>
</div>
`

var (
	OutreachEmail        = MustacheMust(outreachEmail)
	PaymentReceivedEmail = MustacheMust(paymentReceivedEmail)
)
