package services

// otpEmailHTML is the branded template for OTP delivery. Placeholders:
// title, intro line, code, footer year.
const otpEmailHTML = `<!DOCTYPE html>
<html>
<head>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif, "Apple Color Emoji", "Segoe UI Emoji", "Segoe UI Symbol"; line-height: 1.6; color: #1f2937; background-color: #f2f6ff; margin: 0; padding: 20px; }
.container { padding: 20px; max-width: 600px; margin: 20px auto; background-color: #ffffff; border: 1px solid #dbeafe; border-radius: 8px; }
.header { font-size: 24px; font-weight: bold; color: #007bff; margin-bottom: 15px; }
.content { padding: 30px; text-align: center; }
.code { font-size: 36px; font-weight: bold; letter-spacing: 8px; color: #007bff; background-color: #f1f3f5; padding: 15px 20px; border-radius: 5px; display: inline-block; margin: 20px 0; }
.footer { margin-top: 20px; font-size: 12px; color: #6b7280; text-align: center; }
p { margin-bottom: 1em; }
</style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>%s</h1>
    </div>
    <div class="content">
      <p>%s</p>
      <div class="code">%s</div>
      <p>If you did not request this code, you can safely ignore this email.</p>
    </div>
    <div class="footer">
      © %d Dashboard. All rights reserved.
    </div>
  </div>
</body>
</html>`

// welcomeEmailHTML greets a freshly verified account. Placeholders:
// name, email, footer year.
const welcomeEmailHTML = `<!DOCTYPE html>
<html>
<head>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif, "Apple Color Emoji", "Segoe UI Emoji", "Segoe UI Symbol"; line-height: 1.6; color: #1f2937; background-color: #f2f6ff; margin: 0; padding: 20px; }
.container { padding: 20px; max-width: 600px; margin: 20px auto; background-color: #ffffff; border: 1px solid #dbeafe; border-radius: 8px; }
.header { font-size: 28px; font-weight: bold; color: #ffffff; background: linear-gradient(135deg, #007bff, #00c3ff); padding: 40px 20px; text-align: center; border-radius: 8px 8px 0 0; }
.content { padding: 32px 30px; }
.content h2 { color: #007bff; font-size: 22px; margin-top: 0; }
.footer { margin-top: 20px; font-size: 12px; color: #6b7280; text-align: center; }
p { margin-bottom: 1em; }
</style>
</head>
<body>
  <div class="container">
    <div class="header">
      Welcome to Dashboard!
    </div>
    <div class="content">
      <h2>Hi %s,</h2>
      <p>Thank you for signing up with us. We're excited to have you onboard!</p>
      <p>We'll keep in touch via your email: <strong>%s</strong>.</p>
      <p>Best regards,<br><strong>The Dashboard Team</strong></p>
    </div>
    <div class="footer">
      © %d Dashboard. All rights reserved.
    </div>
  </div>
</body>
</html>`
